// Package notice carries the outcome of a user action back to the view that
// triggered it. Views render a Notice; nothing else reaches the user.
package notice

// Kind classifies a Notice.
type Kind int

const (
	// KindSuccess means the action completed. Navigate may name the next view.
	KindSuccess Kind = iota
	// KindValidation means local validation rejected the action before any remote call.
	KindValidation
	// KindFailure means a remote call failed. Message names the failed operation category.
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindValidation:
		return "validation"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Notice is the result of one user action.
type Notice struct {
	Kind     Kind
	Message  string
	Navigate string
	Err      error
}

func OK() Notice { return Notice{Kind: KindSuccess} }

// NavigateTo is a success that moves the user to path.
func NavigateTo(path string) Notice { return Notice{Kind: KindSuccess, Navigate: path} }

func Validation(message string, err error) Notice {
	return Notice{Kind: KindValidation, Message: message, Err: err}
}

func Failure(message string, err error) Notice {
	return Notice{Kind: KindFailure, Message: message, Err: err}
}

func (n Notice) IsOK() bool { return n.Kind == KindSuccess }

// Visible reports whether the notice should be shown to the user.
func (n Notice) Visible() bool { return n.Message != "" }
