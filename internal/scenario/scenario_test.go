package scenario_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/swaglabs/checkout-e2e/internal/driver"
	"github.com/swaglabs/checkout-e2e/internal/fixtures"
	"github.com/swaglabs/checkout-e2e/internal/report"
	"github.com/swaglabs/checkout-e2e/internal/scenario"
	"github.com/swaglabs/checkout-e2e/internal/testutil"
)

func TestCheckout_CompletesAgainstStorefront(t *testing.T) {
	sf := testutil.StartStorefront(t)
	state := scenario.NewState(sf.Pages(), fixtures.Default())

	res, err := scenario.NewRunner(zaptest.NewLogger(t)).Execute(context.Background(), scenario.Checkout(), state)

	require.NoError(t, err)
	assert.Equal(t, report.StatusPassed, res.Status)
	assert.Equal(t, "Sauce Labs Backpack", state.SelectedProduct)
	assert.Len(t, res.Steps, len(scenario.CheckoutSteps()))
	for _, step := range res.Steps {
		assert.Equal(t, report.StatusPassed, step.Status, step.Name)
	}

	assert.Equal(t, "E-Commerce Platform", res.Label(report.AnnotationFeature))
	assert.Equal(t, "Complete Checkout Flow", res.Label(report.AnnotationStory))
	assert.Equal(t, "critical", res.Label(report.AnnotationSeverity))
	assert.Equal(t, "Test complete checkout flow from login to order confirmation", res.Label(report.AnnotationDescription))
	assert.Equal(t, "Swag Labs Complete Checkout Flow/Should complete a full checkout flow with valid credentials", res.FullName)
}

func TestCheckout_StepNames(t *testing.T) {
	steps := scenario.CheckoutSteps()

	require.Len(t, steps, 14)
	assert.Equal(t, "Given user is on Swag Labs login page", steps[0].Name)
	assert.Equal(t, "Then Confirmation message is displayed", steps[13].Name)
}

func TestCheckout_BadPasswordStopsAtProductsPage(t *testing.T) {
	sf := testutil.StartStorefront(t)
	f := fixtures.Default()
	f.Credentials.Password = "not-the-password"
	state := scenario.NewState(sf.Pages(), f)

	res, err := scenario.NewRunner(zaptest.NewLogger(t)).Execute(context.Background(), scenario.Checkout(), state)

	var stepErr *scenario.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 2, stepErr.Index)
	assert.Equal(t, "Then user is redirected to products page", stepErr.Step)
	assert.ErrorIs(t, err, driver.ErrTimeout)

	assert.Equal(t, report.StatusBroken, res.Status)
	require.Len(t, res.Steps, 3, "steps after the failure are not run")
	assert.Equal(t, report.StatusBroken, res.Steps[2].Status)
}

func TestCheckout_WrongConfirmationMessageFails(t *testing.T) {
	sf := testutil.StartStorefront(t)
	f := fixtures.Default()
	f.ExpectedConfirmationMessage = "Your order has shipped"
	state := scenario.NewState(sf.Pages(), f)

	res, err := scenario.NewRunner(zaptest.NewLogger(t)).Execute(context.Background(), scenario.Checkout(), state)

	require.ErrorIs(t, err, scenario.ErrExpectation)
	assert.ErrorIs(t, err, report.ErrAssertion)
	assert.Equal(t, report.StatusFailed, res.Status)
	assert.Len(t, res.Steps, 14)
	assert.Contains(t, res.Message, "Your order has shipped")
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	var ran []string
	step := func(name string, err error) scenario.Step {
		return scenario.Step{Name: name, Run: func(context.Context, *scenario.State) error {
			ran = append(ran, name)
			return err
		}}
	}
	boom := errors.New("boom")
	rec := report.NewRecorder("runner")

	err := scenario.NewRunner(zaptest.NewLogger(t)).Run(context.Background(), rec, &scenario.State{}, []scenario.Step{
		step("one", nil),
		step("two", boom),
		step("three", nil),
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"one", "two"}, ran)
	assert.Equal(t, `step 2 "two": boom`, err.Error())
	assert.Len(t, rec.Steps(), 2)
}

func TestRunner_HonoursCancellationBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ran int
	steps := []scenario.Step{
		{Name: "cancels", Run: func(context.Context, *scenario.State) error {
			ran++
			cancel()
			return nil
		}},
		{Name: "never runs", Run: func(context.Context, *scenario.State) error {
			ran++
			return nil
		}},
	}

	err := scenario.NewRunner(zaptest.NewLogger(t)).Run(ctx, report.NewRecorder("cancel"), &scenario.State{}, steps)

	var stepErr *scenario.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, "never runs", stepErr.Step)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ran)
}

func TestLockedOutLogin(t *testing.T) {
	sf := testutil.StartStorefront(t)
	state := scenario.NewState(sf.Pages(), fixtures.Default())

	res, err := scenario.NewRunner(zaptest.NewLogger(t)).Execute(context.Background(), scenario.LockedOutLogin(), state)

	require.NoError(t, err)
	assert.Equal(t, report.StatusPassed, res.Status)
	assert.Zero(t, sf.Handler.Store.Len(), "a locked out user gets no session")
}

func TestScenarios(t *testing.T) {
	all := scenario.Scenarios()

	require.Contains(t, all, "checkout")
	require.Contains(t, all, "locked-out")
	assert.Equal(t, scenario.Checkout().Name, all["checkout"]().Name)
}
