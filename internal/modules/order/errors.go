package order

import (
	"errors"

	"github.com/georgemunganga/printa-orders/internal/pkg/notice"
)

var (
	ErrOrderNumberRequired = errors.New("order number is required")
	ErrNoLines             = errors.New("order must contain at least one line")
	ErrInvalidLine         = errors.New("a known product and a positive quantity are required")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrUnknownProduct      = errors.New("product not in catalog")
	ErrLineNotFound        = errors.New("line not found")
	ErrDuplicateLine       = errors.New("duplicate line id")
	ErrWrongMode           = errors.New("operation not allowed in this editor mode")
	ErrOrderCompleted      = errors.New("completed orders cannot be changed")
	ErrSaveInFlight        = errors.New("a save is already in progress")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrOrderNotFound       = errors.New("order not found")
	ErrPendingLineInEdit   = errors.New("edit mode holds a line that was never saved")
	ErrDraftNotFound       = errors.New("draft not found")
)

// User-facing messages.
const (
	MsgLoadOrdersFailed   = "Error loading orders"
	MsgLoadOrderFailed    = "Error loading order"
	MsgLoadProductsFailed = "Error loading products"
	MsgSaveFailed         = "Error saving changes"
	MsgDeleteFailed       = "Error deleting order"
	MsgStatusFailed       = "Error updating order status"
	MsgOrderNumber        = "Order number is required"
	MsgNoLines            = "Add at least one product"
	MsgInvalidLine        = "Select product and quantity > 0"
	MsgInvalidQuantity    = "Quantity must be at least 1"
	MsgCompleted          = "Completed orders cannot be changed"
	MsgSaveInFlight       = "Saving..."
	MsgInvalidStatus      = "Select a valid status"
	MsgWrongMode          = "This action is not available here"
	MsgUnknownLine        = "That line is not part of this order"
	MsgDraftExpired       = "This draft no longer exists"
	MsgDraftFailed        = "Error storing draft"
)

// Explain turns a local validation error into the notice shown to the user.
// Errors that are not validation errors become a generic save failure.
func Explain(err error) notice.Notice {
	switch {
	case err == nil:
		return notice.OK()
	case errors.Is(err, ErrOrderNumberRequired):
		return notice.Validation(MsgOrderNumber, err)
	case errors.Is(err, ErrNoLines):
		return notice.Validation(MsgNoLines, err)
	case errors.Is(err, ErrInvalidLine):
		return notice.Validation(MsgInvalidLine, err)
	case errors.Is(err, ErrInvalidQuantity):
		return notice.Validation(MsgInvalidQuantity, err)
	case errors.Is(err, ErrOrderCompleted):
		return notice.Validation(MsgCompleted, err)
	case errors.Is(err, ErrSaveInFlight):
		return notice.Validation(MsgSaveInFlight, err)
	case errors.Is(err, ErrInvalidStatus):
		return notice.Validation(MsgInvalidStatus, err)
	case errors.Is(err, ErrWrongMode):
		return notice.Validation(MsgWrongMode, err)
	case errors.Is(err, ErrLineNotFound):
		return notice.Validation(MsgUnknownLine, err)
	case errors.Is(err, ErrDraftNotFound):
		return notice.Validation(MsgDraftExpired, err)
	default:
		return notice.Failure(MsgSaveFailed, err)
	}
}
