package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ROHANDEV-web/school-assistant/internal/apiclient"
	"github.com/ROHANDEV-web/school-assistant/internal/config"
	"github.com/ROHANDEV-web/school-assistant/internal/console"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View your analytics and the class leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		client, err := apiclient.New(cfg.Client.BaseURL)
		if err != nil {
			return fmt.Errorf("creating API client: %w", err)
		}

		ctx := cmd.Context()
		if _, err := ensureLogin(ctx, client); err != nil {
			return err
		}

		tabs := console.NewTabs()
		tabs.Register("My Analytics", func(ctx context.Context) error {
			return showAnalytics(ctx, client)
		})
		tabs.Register("Leaderboard", func(ctx context.Context) error {
			return showLeaderboard(ctx, client)
		})

		for {
			sel := promptui.Select{
				Label:     "Dashboard",
				Items:     append(tabs.Names(), "Quit"),
				CursorPos: indexOf(tabs.Names(), tabs.Active()),
			}
			_, choice, err := sel.Run()
			if err != nil {
				return fmt.Errorf("tab selection: %w", err)
			}
			if choice == "Quit" {
				return nil
			}
			if err := tabs.Activate(ctx, choice); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func indexOf(items []string, target string) int {
	for i, s := range items {
		if s == target {
			return i
		}
	}
	return 0
}

func showAnalytics(ctx context.Context, client *apiclient.Client) error {
	a, err := client.Analytics(ctx)
	if err != nil {
		return err
	}

	fmt.Println("\nQuestions by subject:")
	if len(a.Subjects) == 0 {
		fmt.Println("  (no questions asked yet)")
	}
	subjects := make([]string, 0, len(a.Subjects))
	for s := range a.Subjects {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool {
		return a.Subjects[subjects[i]] > a.Subjects[subjects[j]]
	})
	for _, s := range subjects {
		fmt.Printf("  %-20s %d\n", s, a.Subjects[s])
	}

	fmt.Println("\nRecent quizzes:")
	if len(a.QuizHistory) == 0 {
		fmt.Println("  (no quizzes taken yet)")
	}
	for _, q := range a.QuizHistory {
		fmt.Printf("  %-20s %s\n", q.Topic, q.Score)
	}
	fmt.Println()
	return nil
}

func showLeaderboard(ctx context.Context, client *apiclient.Client) error {
	entries, err := client.Leaderboard(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\n%-4s %-20s %-8s %s\n", "#", "Student", "Level", "XP")
	for i, e := range entries {
		fmt.Printf("%-4d %-20s %-8d %d\n", i+1, e.Username, e.Level, e.XP)
	}
	fmt.Println()
	return nil
}
