package notification

import (
	"context"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell"
)

const logMsgEmitFailed = "loan notification could not be emitted"

// EmitTransition emits the notification for a committed transition.
// Failures are logged and not returned, because the transition is already committed.
func EmitTransition(ctx context.Context, emitter Emitter, logger shell.ContextualLogger, result shell.HandlerResult) {
	if emitter == nil || !result.HasEvent() {
		return
	}

	if err := emitter.Emit(ctx, EventFrom(result.Loan, result.Event)); err != nil && logger != nil {
		logger.ErrorContext(
			ctx,
			logMsgEmitFailed,
			logAttrLoanID, result.Loan.ID,
			logAttrUserID, result.Loan.UserID,
			shell.LogAttrError, err.Error(),
		)
	}
}
