package esp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"

	"github.com/zvezde365/zvezde-api/internal/pkg/logger"
)

// sesAPI is the subset of the SES v2 client the sender calls.
type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESSender sends through AWS SES v2.
type SESSender struct {
	region string
	client sesAPI
}

// NewSESSender builds an SES client. Static credentials are used when both
// keys are set; otherwise the default AWS credential chain applies.
func NewSESSender(ctx context.Context, accessKey, secretKey, region string) (*SESSender, error) {
	if region == "" {
		region = "eu-central-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESSender{region: region, client: sesv2.NewFromConfig(cfg)}, nil
}

func newSESSenderWithClient(client sesAPI, region string) *SESSender {
	return &SESSender{region: region, client: client}
}

func (s *SESSender) Name() string { return "ses" }

func utf8Content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String("UTF-8")}
}

// Send delivers one message with SendEmail.
func (s *SESSender) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if s.client == nil {
		return nil, &ProviderError{Provider: s.Name(), Detail: "SES client not initialized"}
	}
	if err := validate(s.Name(), msg); err != nil {
		return nil, err
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination: &types.Destination{
			ToAddresses: msg.To,
			CcAddresses: msg.CC,
		},
		ReplyToAddresses: msg.ReplyTo,
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: utf8Content(msg.Subject),
				Body:    &types.Body{Html: utf8Content(msg.HTML)},
			},
		},
	}
	if msg.Text != "" {
		input.Content.Simple.Body.Text = utf8Content(msg.Text)
	}
	for k, v := range msg.Tags {
		input.EmailTags = append(input.EmailTags, types.MessageTag{Name: aws.String(k), Value: aws.String(v)})
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{
				Provider: s.Name(),
				Detail:   apiErr.ErrorCode() + ": " + apiErr.ErrorMessage(),
				Err:      err,
			}
		}
		return nil, transportError(s.Name(), err)
	}

	messageID := aws.ToString(out.MessageId)
	logger.Info("email accepted", "provider", s.Name(), "region", s.region,
		"to", strings.Join(msg.To, ","), "message_id", messageID)

	return &SendResult{MessageID: messageID, Provider: s.Name(), SentAt: time.Now()}, nil
}
