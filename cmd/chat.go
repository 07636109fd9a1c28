package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ROHANDEV-web/school-assistant/internal/apiclient"
	"github.com/ROHANDEV-web/school-assistant/internal/config"
	"github.com/ROHANDEV-web/school-assistant/internal/console"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive tutoring chat",
	Long: `Opens an interactive tutoring session against the server. Type a
question to ask the tutor, or a slash command for the study tools:

  /subject <name>   set the subject for follow-up questions
  /notes            generate study notes on a topic
  /quiz             take a 5-question quiz and earn XP
  /vision <image>   ask a question about an image
  /pdf <file>       ask a question about a PDF document
  /save             export the last generated notes as a PDF
  /credits          show remaining questions for today
  /quit             leave the session`,
}

func init() {
	chatCmd.RunE = runChat
	rootCmd.AddCommand(chatCmd)
}

// chatSession holds the state of one interactive run.
type chatSession struct {
	client     *apiclient.Client
	transcript *console.Transcript
	chat       *console.ChatFlow
	tools      *console.ToolFlow

	subject   string
	lastNotes string // most recent notes content, for /save
	printed   int    // transcript messages already shown
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := apiclient.New(cfg.Client.BaseURL)
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	ctx := cmd.Context()
	profile, err := ensureLogin(ctx, client)
	if err != nil {
		return err
	}

	s := &chatSession{client: client}
	s.transcript = console.NewTranscript(func(left int) {
		fmt.Printf("  (%d questions left today)\n", left)
	})
	s.chat = console.NewChatFlow(client, s.transcript)
	s.tools = console.NewToolFlow(client)

	fmt.Printf("\nWelcome back, %s! Level %d · %d XP · %d/%d questions left today.\n",
		profile.Username, profile.XP/100+1, profile.XP,
		profile.QuestionsLeft, profile.DailyLimit)
	fmt.Println("Ask me anything, or type /help for the study tools.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n%s> ", promptLabel(s.subject))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := s.runCommand(ctx, line); quit {
				break
			}
			continue
		}

		limitReached := s.chat.Ask(ctx, line, s.subject)
		s.printNew()
		if limitReached {
			s.offerAdReward(ctx)
		}
	}

	fmt.Println("Goodbye! Keep studying.")
	return scanner.Err()
}

func promptLabel(subject string) string {
	if subject == "" {
		return "you"
	}
	return subject
}

// printNew prints transcript messages added since the last call.
func (s *chatSession) printNew() {
	msgs := s.transcript.Messages()
	for ; s.printed < len(msgs); s.printed++ {
		m := msgs[s.printed]
		switch m.Role {
		case console.RoleUser:
			// Already on screen, the user just typed it.
		case console.RoleAssistant:
			fmt.Printf("\ntutor: %s\n", m.Text)
		default:
			fmt.Printf("\n[%s]\n", m.Text)
		}
	}
}

// runCommand dispatches a slash command; true means quit.
func (s *chatSession) runCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	var err error
	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Println(chatCmd.Long)
	case "/subject":
		s.subject = rest
		if s.subject == "" {
			fmt.Println("Subject cleared.")
		} else {
			fmt.Printf("Subject set to %s.\n", s.subject)
		}
	case "/credits":
		err = s.showCredits(ctx)
	case "/notes":
		err = s.runNotes(ctx)
	case "/quiz":
		err = s.runQuiz(ctx)
	case "/vision":
		err = s.runFileTool(ctx, console.ToolVision, rest, "What would you like to ask about this image?")
	case "/pdf":
		err = s.runFileTool(ctx, console.ToolPDF, rest, "What would you like to ask about this document?")
	case "/save":
		err = s.saveNotes(ctx)
	default:
		fmt.Printf("Unknown command %s. Type /help for the list.\n", cmd)
	}

	if err != nil {
		if apiclient.IsLimitReached(err) {
			fmt.Println("[Daily limit reached]")
			s.offerAdReward(ctx)
		} else {
			fmt.Printf("Error: %v\n", err)
		}
	}
	return false
}

func (s *chatSession) showCredits(ctx context.Context) error {
	profile, err := s.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d of %d questions left today.\n", profile.QuestionsLeft, profile.DailyLimit)
	return nil
}

func (s *chatSession) runNotes(ctx context.Context) error {
	if err := s.tools.Open(console.ToolNotes); err != nil {
		return err
	}
	defer s.tools.Close()

	topic, err := askRequired("Topic for the notes")
	if err != nil {
		return err
	}

	fmt.Println("Generating notes...")
	result, err := s.tools.Generate(ctx, console.ToolInput{Subject: s.subject, Topic: topic})
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", result.Content)
	fmt.Printf("(%d questions left today, /save exports these notes as a PDF)\n", result.QuestionsLeft)
	s.lastNotes = result.Content
	s.transcript.UpdateCredits(result.QuestionsLeft)
	return nil
}

func (s *chatSession) runQuiz(ctx context.Context) error {
	if err := s.tools.Open(console.ToolQuiz); err != nil {
		return err
	}
	defer s.tools.Close()

	topic, err := askRequired("Quiz topic")
	if err != nil {
		return err
	}

	fmt.Println("Generating quiz...")
	result, err := s.tools.Generate(ctx, console.ToolInput{Subject: s.subject, Topic: topic})
	if err != nil {
		return err
	}
	s.transcript.UpdateCredits(result.QuestionsLeft)

	flow := result.Quiz
	for i, q := range flow.Questions() {
		sel := promptui.Select{
			Label: fmt.Sprintf("Q%d: %s", i+1, q.Question),
			Items: q.Options,
			Size:  len(q.Options),
		}
		_, option, err := sel.Run()
		if err != nil {
			return fmt.Errorf("answer selection: %w", err)
		}
		if err := flow.Select(i, option); err != nil {
			return err
		}
	}

	res, err := flow.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nYou scored %d/%d on %s and earned %d XP!\n",
		res.Score, res.Total, topic, res.XPEarned)
	return nil
}

// runFileTool handles the vision and pdf tools, which both take an
// uploaded file plus a question.
func (s *chatSession) runFileTool(ctx context.Context, tool console.Tool, path, label string) error {
	if path == "" {
		return fmt.Errorf("usage: /%s <file path>", tool)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := s.tools.Open(tool); err != nil {
		return err
	}
	defer s.tools.Close()

	prompt := promptui.Prompt{Label: label, AllowEdit: true}
	question, err := prompt.Run()
	if err != nil {
		return fmt.Errorf("question prompt: %w", err)
	}
	if tool == console.ToolPDF && strings.TrimSpace(question) == "" {
		return console.ErrTopicRequired
	}

	fmt.Println("Thinking...")
	result, err := s.tools.Generate(ctx, console.ToolInput{
		Subject:  s.subject,
		Topic:    question,
		FileName: filepath.Base(path),
		FileData: data,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\ntutor: %s\n", result.Content)
	s.transcript.UpdateCredits(result.QuestionsLeft)
	return nil
}

func (s *chatSession) saveNotes(ctx context.Context) error {
	if s.lastNotes == "" {
		return fmt.Errorf("no notes to save yet, run /notes first")
	}
	data, err := s.client.DownloadPDF(ctx, "Study Notes", s.lastNotes)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("study_notes_%s.pdf", time.Now().Format("2006-01-02"))
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	fmt.Printf("Saved %s (%d bytes).\n", name, len(data))
	return nil
}

// offerAdReward runs the watch-an-ad countdown and claims the extra
// credits when it completes.
func (s *chatSession) offerAdReward(ctx context.Context) {
	sel := promptui.Select{
		Label: "Daily limit reached. Watch an ad to earn an extra question?",
		Items: []string{"Yes, watch the ad", "No thanks"},
	}
	idx, _, err := sel.Run()
	if err != nil || idx != 0 {
		return
	}

	reward := console.NewRewardFlow(s.client, func(newLimit int) {
		fmt.Printf("Your daily limit is now %d questions.\n", newLimit)
	})
	reward.Start()

	total := int(console.AdDuration / time.Second)
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Watching ad"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)
	for !reward.Claimable() {
		select {
		case <-ctx.Done():
			reward.Cancel()
			return
		case <-time.After(time.Second):
		}
		_ = bar.Set(total - int(reward.Remaining()/time.Second))
	}
	_ = bar.Finish()

	resp, err := reward.Claim(ctx)
	if err != nil {
		fmt.Printf("Claiming reward failed: %v\n", err)
		return
	}
	if resp.Success {
		fmt.Println("Thanks for watching! Extra question unlocked.")
	}
}

// ensureLogin establishes a session, offering registration when the
// user has no account yet.
func ensureLogin(ctx context.Context, client *apiclient.Client) (*apiclient.Profile, error) {
	sel := promptui.Select{
		Label: "Welcome to School Assistant",
		Items: []string{"Log in", "Create an account"},
	}
	idx, _, err := sel.Run()
	if err != nil {
		return nil, fmt.Errorf("login selection: %w", err)
	}

	usernamePrompt := promptui.Prompt{Label: "Username"}
	username, err := usernamePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("username prompt: %w", err)
	}

	passwordPrompt := promptui.Prompt{Label: "Password", Mask: '*'}
	password, err := passwordPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("password prompt: %w", err)
	}

	if idx == 1 {
		emailPrompt := promptui.Prompt{Label: "Email"}
		email, err := emailPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("email prompt: %w", err)
		}
		if err := client.Register(ctx, username, email, password); err != nil {
			return nil, fmt.Errorf("registration failed: %w", err)
		}
	} else if err := client.Login(ctx, username, password); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return client.Me(ctx)
}

// askRequired prompts until the user enters a non-empty value.
func askRequired(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("value is required")
			}
			return nil
		},
	}
	result, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}
