package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/search"
)

func runList(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	printCatalog(cmd.OutOrStdout(), a.repo.Summaries(cmd.Context()))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	resolver := search.NewResolver(a.repo, a.log)

	cond, err := resolver.Resolve(ctx, strings.Join(args, " "))
	if errors.Is(err, domain.ErrNoMatch) {
		fmt.Fprintln(out, resolver.NoMatchAdvice(ctx))
		return nil
	}
	if err != nil {
		return err
	}
	printCondition(out, cond)
	return nil
}

func printCatalog(w io.Writer, catalog []domain.ConditionSummary) {
	for i, c := range catalog {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, c.Name, c.ID)
		fmt.Fprintf(w, "   %s\n", c.Description)
		fmt.Fprintf(w, "   %d exercises, %d recipes\n", c.ExerciseCount, c.RecipeCount)
	}
}

func printCondition(w io.Writer, c *domain.Condition) {
	fmt.Fprintf(w, "%s (%s)\n%s\n", c.Name, c.ID, c.Description)
	if len(c.Exercises) > 0 {
		fmt.Fprintln(w, "\nExercises:")
		for _, ex := range c.Exercises {
			fmt.Fprintf(w, "  - %s, %s, %s\n", ex.Name, ex.Duration, ex.Intensity)
		}
	}
	if len(c.Recipes) > 0 {
		fmt.Fprintln(w, "\nRecipes:")
		for _, r := range c.Recipes {
			fmt.Fprintf(w, "  - %s, serves %d, %s\n", r.Name, r.Servings, r.Difficulty)
		}
	}
	fmt.Fprintf(w, "\nOpen it with: healthmate show %s\n", c.ID)
}
