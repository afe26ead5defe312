package authform

import (
	"context"

	"github.com/hnrobert/signalist/internal/logger"
)

// LogSubmitter is the placeholder handler: it logs the submission and succeeds.
// Passwords are redacted.
type LogSubmitter struct{}

func (LogSubmitter) SubmitSignIn(_ context.Context, v SignInValues) error {
	logger.Info("sign-in submitted: email=%s password=%s", v.Email, redact(v.Password))
	return nil
}

func (LogSubmitter) SubmitSignUp(_ context.Context, v SignUpValues) error {
	logger.Info("sign-up submitted: fullName=%q email=%s password=%s country=%s investmentGoals=%s riskTolerance=%s preferredIndustry=%s",
		v.FullName, v.Email, redact(v.Password), v.Country, v.InvestmentGoals, v.RiskTolerance, v.PreferredIndustry)
	return nil
}
