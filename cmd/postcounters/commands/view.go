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

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "record one view of the post and print the view count",
	RunE:  viewCmdF,
}

func init() {
	RootCmd.AddCommand(viewCmd)
}

func viewCmdF(command *cobra.Command, args []string) error {
	postId, err := postIdFromFlags()
	if err != nil {
		return err
	}

	a, shutdown, err := initApp(false)
	if err != nil {
		return err
	}
	defer shutdown()

	views := app.NewMemoryCounter(0)
	s, appErr := a.NewCounterSync(app.PageContext{
		PostId:      postId,
		ViewCounter: views,
		Credential:  credentialFromFlags(a),
	})
	if appErr != nil {
		return appErr
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appErr := s.RecordView(ctx); appErr != nil {
		return appErr
	}
	s.Wait()

	fmt.Fprintf(command.OutOrStdout(), "views: %d\n", views.Value())
	return nil
}
