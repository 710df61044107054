package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zvezde365/zvezde-api/internal/horoscope"
	"github.com/zvezde365/zvezde-api/internal/storage"
)

func newHoroscopeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "horoscope",
		Short: "Validate and publish horoscope content",
	}

	validate := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a horoscope document and report how fresh each reading is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := readDocument(args[0])
			if err != nil {
				return err
			}
			return emit(cmd, summarize(doc, time.Now()), func(w io.Writer) {
				printf(w, "%d signs\n", len(doc.Horoscopes))
				for _, row := range summarize(doc, time.Now()) {
					printf(w, "%-12s daily=%-6s weekly=%-6s monthly=%s\n", row.Sign, row.Daily, row.Weekly, row.Monthly)
				}
			})
		},
	}

	publish := &cobra.Command{
		Use:   "publish FILE",
		Short: "Validate a horoscope document and upload it to S3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, _ := cmd.Flags().GetString("bucket")
			key, _ := cmd.Flags().GetString("key")
			region, _ := cmd.Flags().GetString("region")
			if bucket == "" {
				return fmt.Errorf("--bucket is required (or HOROSCOPE_S3_BUCKET)")
			}
			if key == "" {
				key = filepath.Base(args[0])
			}

			doc, data, err := readDocument(args[0])
			if err != nil {
				return err
			}
			objects, err := storage.NewObjectStore(cmd.Context(), bucket, region)
			if err != nil {
				return err
			}
			if err := objects.Put(cmd.Context(), key, contentType(args[0]), data); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "published %d signs to s3://%s/%s\n", len(doc.Horoscopes), bucket, key)
			return nil
		},
	}
	publish.Flags().String("bucket", os.Getenv("HOROSCOPE_S3_BUCKET"), "destination bucket")
	publish.Flags().String("key", "", "object key (default: file name)")
	publish.Flags().String("region", os.Getenv("AWS_REGION"), "AWS region")

	cmd.AddCommand(validate, publish)
	return cmd
}

func readDocument(path string) (*horoscope.Document, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := horoscope.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, data, nil
}

func contentType(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "application/json"
	}
	return "application/yaml"
}

type freshnessRow struct {
	Sign    string              `json:"sign"`
	Daily   horoscope.Freshness `json:"daily"`
	Weekly  horoscope.Freshness `json:"weekly"`
	Monthly horoscope.Freshness `json:"monthly"`
}

func summarize(doc *horoscope.Document, now time.Time) []freshnessRow {
	rows := make([]freshnessRow, 0, len(doc.Horoscopes))
	for _, e := range doc.Horoscopes {
		rows = append(rows, freshnessRow{
			Sign:    string(e.Sign),
			Daily:   horoscope.FreshnessOf(horoscope.Daily, e.Daily.LastUpdated, now),
			Weekly:  horoscope.FreshnessOf(horoscope.Weekly, e.Weekly.LastUpdated, now),
			Monthly: horoscope.FreshnessOf(horoscope.Monthly, e.Monthly.LastUpdated, now),
		})
	}
	return rows
}
