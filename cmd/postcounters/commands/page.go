package commands

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clear-ness/postcounters/mlog"
	"github.com/clear-ness/postcounters/model"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "open the post page: records a view, then 'l' toggles the like and 'q' quits",
	RunE:  pageCmdF,
}

func init() {
	pageCmd.Flags().Int("views", 0, "view count rendered with the page.")
	pageCmd.Flags().Int("likes", 0, "like count rendered with the page.")
	pageCmd.Flags().Bool("liked", false, "whether the page was rendered as liked by the viewer.")

	RootCmd.AddCommand(pageCmd)
}

func pageCmdF(command *cobra.Command, args []string) error {
	postId, err := postIdFromFlags()
	if err != nil {
		return err
	}

	views, _ := command.Flags().GetInt("views")
	likes, _ := command.Flags().GetInt("likes")
	liked, _ := command.Flags().GetBool("liked")

	a, shutdown, err := initApp(true)
	if err != nil {
		return err
	}
	defer shutdown()

	listenerId := a.ConfigStore().AddListener(func(oldCfg, newCfg *model.Config) {
		mlog.Info("Config reloaded", mlog.Int("animation_duration_millis", *newCfg.AnimationSettings.DurationMillis))
	})
	defer a.ConfigStore().RemoveListener(listenerId)

	display := newTerminalDisplay(command.OutOrStdout(), views, likes, liked)
	s, appErr := a.NewCounterSync(display.PageContext(postId, credentialFromFlags(a)))
	if appErr != nil {
		return appErr
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	display.Render()

	var requests sync.WaitGroup
	requests.Add(1)
	go func() {
		defer requests.Done()
		if appErr := s.RecordView(ctx); appErr != nil {
			display.Message(appErr.Error())
		}
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(command.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				requests.Wait()
				s.Wait()
				return nil
			}

			switch strings.TrimSpace(line) {
			case "l":
				requests.Add(1)
				go func() {
					defer requests.Done()
					if appErr := s.ToggleLike(ctx); appErr != nil {
						display.Message(appErr.Error())
					}
				}()
			case "q":
				return nil
			}
		}
	}
}
