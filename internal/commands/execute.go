package commands

import "fmt"

type Result struct {
	Message string
}

// Handlers receive parsed arguments. Priority, Delete, Toggle and Open act
// on the task under the cursor.
type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Filter   func(FilterArgs) (Result, error)
	Theme    func(ThemeArgs) (Result, error)
	Move     func(MoveArgs) (Result, error)
	Priority func(PriorityArgs) (Result, error)
	Delete   func() (Result, error)
	Toggle   func() (Result, error)
	Open     func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme(*cmd.Theme)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Move(*cmd.Move)
	case TypePriority:
		if handlers.Priority == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Priority(*cmd.Priority)
	case TypeDelete:
		return call(cmd.Type, handlers.Delete)
	case TypeToggle:
		return call(cmd.Type, handlers.Toggle)
	case TypeOpen:
		return call(cmd.Type, handlers.Open)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func call(t Type, fn func() (Result, error)) (Result, error) {
	if fn == nil {
		return Result{}, missing(t)
	}
	return fn()
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
