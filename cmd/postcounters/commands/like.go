package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clear-ness/postcounters/app"
)

var likeCmd = &cobra.Command{
	Use:   "like",
	Short: "toggle the viewer's like on the post and print the result",
	RunE:  likeCmdF,
}

func init() {
	RootCmd.AddCommand(likeCmd)
}

func likeCmdF(command *cobra.Command, args []string) error {
	postId, err := postIdFromFlags()
	if err != nil {
		return err
	}

	a, shutdown, err := initApp(false)
	if err != nil {
		return err
	}
	defer shutdown()

	likes := app.NewMemoryCounter(0)
	icon := app.NewMemoryIcon(false)
	s, appErr := a.NewCounterSync(app.PageContext{
		PostId:      postId,
		LikeCounter: likes,
		LikeIcon:    icon,
		Credential:  credentialFromFlags(a),
	})
	if appErr != nil {
		return appErr
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appErr := s.ToggleLike(ctx); appErr != nil {
		return appErr
	}
	s.Wait()

	status := "unliked"
	if icon.Liked() {
		status = "liked"
	}
	fmt.Fprintf(command.OutOrStdout(), "%s, likes: %d\n", status, likes.Value())
	return nil
}
