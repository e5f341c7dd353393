package setup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSteps locks the provisioning sequence order and contents.
func TestSteps(t *testing.T) {
	t.Parallel()

	steps := Steps("libsndfile1", "requirements.txt")
	require.Len(t, steps, 4)

	require.Equal(t, "refresh index", steps[0].Name)
	require.Equal(t, "apt-get update", steps[0].String())

	require.Equal(t, "install package", steps[1].Name)
	require.Equal(t, "apt-get install -y libsndfile1", steps[1].String())
	require.Contains(t, steps[1].Env, "DEBIAN_FRONTEND=noninteractive")

	require.Equal(t, "upgrade installer", steps[2].Name)
	require.Equal(t, "python3 -m pip install --upgrade pip", steps[2].String())

	require.Equal(t, "install dependencies", steps[3].Name)
	require.Equal(t, "python3 -m pip install -r requirements.txt", steps[3].String())
}

// TestRunSequence_Order verifies steps run strictly in order on success.
func TestRunSequence_Order(t *testing.T) {
	t.Parallel()

	var executed []string

	err := runSequence(context.Background(), Steps("pkg", "reqs.txt"),
		func(_ context.Context, step Step) error {
			executed = append(executed, step.Name)
			return nil
		})

	require.NoError(t, err)
	require.Equal(t,
		[]string{"refresh index", "install package", "upgrade installer", "install dependencies"},
		executed)
}

// TestRunSequence_AbortsOnFailure verifies no step runs after the first failure.
func TestRunSequence_AbortsOnFailure(t *testing.T) {
	t.Parallel()

	var (
		executed []string
		boom     = errors.New("index servers unreachable")
	)

	err := runSequence(context.Background(), Steps("pkg", "reqs.txt"),
		func(_ context.Context, step Step) error {
			executed = append(executed, step.Name)

			if step.Name == "install package" {
				return boom
			}

			return nil
		})

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, "install package", stepErr.Step)
	require.Equal(t, 1, stepErr.ExitCode)
	require.ErrorIs(t, err, boom)

	// The Python steps never executed.
	require.Equal(t, []string{"refresh index", "install package"}, executed)
}
