package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"skill-match/internal/catalog"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/skill"
	"skill-match/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	scoreSkills []string
	scorePoints int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank the catalog jobs for a skill set without touching storage",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringSliceVar(&scoreSkills, "skills", nil, "Skill ids or synonyms, comma separated")
	scoreCmd.Flags().IntVar(&scorePoints, "points", 0, "Life points to score with")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if scorePoints < 0 {
		return fmt.Errorf("--points must not be negative")
	}

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	skills, err := resolveSkills(cat.Taxonomy(), scoreSkills)
	if err != nil {
		return err
	}

	m := usecase.NewMatcher(cat, matching.Policy{LifeBoost: cfg.Engine.LifeBoost}, cfg.Engine.RecommendLimit, cfg.Engine.ScoringWorkers)
	matches, err := m.ScoreAll(cmd.Context(), skills, scorePoints)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tTITLE\tMATCH\tRANK\tELIGIBLE\tLOCKED\tMISSING")
	for _, jm := range matches {
		r := jm.Result
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%d\t%t\t%t\t%s\n",
			jm.Job.ID, jm.Job.Title, r.MatchPercent, r.RankScore, r.MeetsEligibility, r.Locked,
			strings.Join(r.MissingSkills.Sorted(), ","),
		)
	}
	return w.Flush()
}

// resolveSkills maps each input through the taxonomy's synonyms. Anything
// that does not resolve is reported in one error.
func resolveSkills(tax *skill.Taxonomy, in []string) (skill.Set, error) {
	out := skill.NewSet()
	var unknown []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, ok := tax.Resolve(s)
		if !ok {
			unknown = append(unknown, s)
			continue
		}
		out.Add(id)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown skills: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
