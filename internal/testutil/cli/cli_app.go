package cli

import (
	"context"
	"testing"

	"github.com/4wadia/focusflow/internal/app"
	clipkg "github.com/4wadia/focusflow/internal/cli"
	"github.com/4wadia/focusflow/internal/testutil"
	"github.com/spf13/cobra"
)

// TestOwner is the owner CLI commands act as in tests
const TestOwner = "local"

// ExecuteCLICommand executes a CLI command against a test app instance.
// The app is injected through the context so GetCLIFromContext never opens
// the real database.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandAs(t, context.Background(), testApp, TestOwner, cmd, args)
}

// ExecuteCLICommandAs executes a CLI command as a specific owner
func ExecuteCLICommandAs(t *testing.T, ctx context.Context, testApp *app.App, owner string, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	SetupCobraCommand(cmd, args)
	ctxWithApp := clipkg.WithApp(ctx, testApp, owner)
	cmd.SetContext(ctxWithApp)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})

	return output, executeErr
}
