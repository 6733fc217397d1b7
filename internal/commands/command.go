// Package commands parses and dispatches the command palette.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeFilter   Type = "filter"
	TypeTheme    Type = "theme"
	TypeMove     Type = "move"
	TypePriority Type = "priority"
	TypeDelete   Type = "delete"
	TypeToggle   Type = "toggle"
	TypeOpen     Type = "open"
)

// Types lists the palette commands in the order help shows them.
var Types = []Type{TypeAdd, TypeFilter, TypeTheme, TypeMove, TypePriority, TypeDelete, TypeToggle, TypeOpen}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

type FilterArgs struct {
	Mode model.Filter
}

type ThemeArgs struct {
	Dark bool
}

// MoveArgs holds 1-based positions in the visible list.
type MoveArgs struct {
	From int
	To   int
}

type PriorityArgs struct {
	Priority model.Priority
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Filter   *FilterArgs
	Theme    *ThemeArgs
	Move     *MoveArgs
	Priority *PriorityArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, raw)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeMove:
		return parseMove(input, args)
	case TypePriority:
		return parsePriority(input, args)
	case TypeDelete, TypeToggle, TypeOpen:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd keeps the title's inner spacing as typed.
func parseAdd(input, raw string) (Command, error) {
	title := strings.TrimSpace(raw[len(TypeAdd):])
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Title: title}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, active, completed"}
	}
	mode, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Mode: mode}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires dark or light"}
	}
	switch strings.ToLower(args[0]) {
	case "dark":
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Dark: true}}, nil
	case "light":
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Dark: false}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme: %s", args[0])}
	}
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires from and to positions"}
	}
	from, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from, To: to}}, nil
}

func parsePriority(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "priority requires low, medium or high"}
	}
	p, err := model.ParsePriority(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{Priority: p}}, nil
}

func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid position: %s", arg)}
	}
	return n, nil
}
