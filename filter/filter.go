// Package filter compiles expr-language expressions that select videos,
// comments or creators.
//
// Expressions see the item's fields as variables and a handful of helpers:
//
//	Likes > 1000 and hasHashtag("dance")
//	daysSince(Uploaded) < 7 and Country == "US"
//	not IsReply and contains(Content, "wow")
//	Fans > 10000 and Gender == "female"
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/likee/models"
)

// Subject describes what a filter runs against.
type Subject[T any] struct {
	name     string
	env      func(T) map[string]any
	describe func(T) string
}

// Subjects
var (
	Videos = Subject[models.Video]{
		name:     "video",
		env:      videoEnv,
		describe: func(v models.Video) string { return "video " + v.ID.String() },
	}
	Comments = Subject[models.Comment]{
		name:     "comment",
		env:      commentEnv,
		describe: func(c models.Comment) string { return "comment " + c.ID.String() },
	}
	Creators = Subject[models.Creator]{
		name:     "creator",
		env:      creatorEnv,
		describe: func(c models.Creator) string { return "creator " + c.Username },
	}
)

var programs = newProgramCache(100)

// Filter is a compiled expression bound to a subject.
type Filter[T any] struct {
	program *vm.Program
	expr    string
	subject Subject[T]
}

// Compile type-checks expression against the subject's variables.
// Compiled programs are cached, so compiling the same expression twice is cheap.
func Compile[T any](subject Subject[T], expression string) (*Filter[T], error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression", Position: -1}
	}

	key := subject.name + "\x00" + expression
	if program, ok := programs.get(key); ok {
		return &Filter[T]{program: program, expr: expression, subject: subject}, nil
	}

	var zero T
	program, err := expr.Compile(expression, expr.Env(subject.env(zero)), expr.AsBool())
	if err != nil {
		cerr := &CompilationError{Expression: expression, Reason: err.Error(), Position: -1, Err: err}
		var ferr *file.Error
		if errors.As(err, &ferr) {
			cerr.Reason = ferr.Message
			cerr.Position = ferr.Column
		}
		return nil, cerr
	}
	programs.put(key, program)

	return &Filter[T]{program: program, expr: expression, subject: subject}, nil
}

// Match reports whether item satisfies the filter.
func (f *Filter[T]) Match(item T) (bool, error) {
	result, err := expr.Run(f.program, f.subject.env(item))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expr,
			Item:       f.subject.describe(item),
			Reason:     err.Error(),
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expr,
			Item:       f.subject.describe(item),
			Reason:     fmt.Sprintf("expression returned %T, not bool", result),
		}
	}
	return matched, nil
}

// String returns the original expression.
func (f *Filter[T]) String() string {
	return f.expr
}
