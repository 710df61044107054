package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zvezde365/zvezde-api/internal/astro"
)

func newMoonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moon",
		Short: "Show the moon phase for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, _ := cmd.Flags().GetString("date")
			t := time.Now()
			if raw != "" {
				var err error
				if t, err = time.Parse(time.RFC3339, raw); err != nil {
					if t, err = time.Parse(time.DateOnly, raw); err != nil {
						return fmt.Errorf("invalid --date %q: use YYYY-MM-DD or RFC 3339", raw)
					}
				}
			}
			res := astro.CalculateMoonPhase(t)
			info, _ := astro.MoonPhaseByID(res.Phase)
			return emit(cmd, res, func(w io.Writer) {
				printf(w, "%s (%s)\n", info.Name, res.Phase)
				printf(w, "illumination %.0f%%, %.1f°\n", res.Illumination*100, res.Degrees)
				printf(w, "%s\n", info.Meaning)
			})
		},
	}
	cmd.Flags().String("date", "", "date as YYYY-MM-DD or RFC 3339 (default now)")
	return cmd
}

func newSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign MONTH DAY",
		Short: "Find the sun sign for a birthday",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[0])
			}
			day, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day %q", args[1])
			}
			id, ok := astro.ResolveSign(month, day)
			if !ok {
				return fmt.Errorf("no sign for %02d-%02d", month, day)
			}
			s, _ := astro.Sign(id)
			return emit(cmd, s, func(w io.Writer) {
				printf(w, "%s (%s)\n", s.Name, s.ID)
				printf(w, "%s to %s, %s, %s, ruled by %s\n",
					s.Start, s.End, s.Element.Name(), s.Quality.Name(), s.RulingString())
			})
		},
	}
}

func parseSign(arg string) (astro.SignID, error) {
	id, ok := astro.ParseSignID(arg)
	if !ok {
		return "", fmt.Errorf("%w: %q", astro.ErrUnknownSign, arg)
	}
	return id, nil
}

func newCompatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compat SIGN1 SIGN2",
		Short: "Score the compatibility of two signs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseSign(args[0])
			if err != nil {
				return err
			}
			b, err := parseSign(args[1])
			if err != nil {
				return err
			}
			res, err := astro.GetCompatibilityInsights(a, b)
			if err != nil {
				return err
			}
			return emit(cmd, res, func(w io.Writer) {
				printf(w, "score %d (chemistry %d, communication %d, stability %d)\n",
					res.Score, res.Chemistry, res.Communication, res.Stability)
				printf(w, "%s\n", res.Overview)
				printf(w, "strengths:\n")
				for _, s := range res.Strengths {
					printf(w, "  + %s\n", s)
				}
				printf(w, "challenges:\n")
				for _, c := range res.Challenges {
					printf(w, "  - %s\n", c)
				}
			})
		},
	}
}

func newAffirmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "affirm SIGN",
		Short: "Generate an affirmation for a sign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sign, err := parseSign(args[0])
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetString("phase")
			var phase astro.MoonPhase
			switch {
			case strings.EqualFold(raw, "current"):
				phase = astro.CurrentMoonPhase().Phase
			case raw != "":
				p, ok := astro.ParseMoonPhase(raw)
				if !ok {
					return fmt.Errorf("unknown moon phase %q", raw)
				}
				phase = p
			}
			text := astro.GenerateAffirmation(sign, phase)
			return emit(cmd, map[string]string{"sign": string(sign), "phase": string(phase), "affirmation": text},
				func(w io.Writer) { printf(w, "%s\n", text) })
		},
	}
	cmd.Flags().String("phase", "", "moon phase id, or \"current\"")
	return cmd
}

func newAspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aspect DEGREES",
		Short: "Name the aspect formed by an angular separation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sep, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid separation %q", args[0])
			}
			a, orb, ok := astro.MatchAspect(sep)
			if !ok {
				return emit(cmd, map[string]any{"separation": sep, "aspect": nil},
					func(w io.Writer) { printf(w, "no aspect at %g°\n", sep) })
			}
			sig := astro.SignificanceFor(orb)
			return emit(cmd, map[string]any{"separation": sep, "aspect": a, "orb": orb, "significance": sig},
				func(w io.Writer) {
					printf(w, "%s (%s) orb %.2f°, %s\n", a.Name, a.ID, orb, sig)
				})
		},
	}
}
