// Package celcondition compiles operator supplied CEL rules that mark a webhook response
// as an acknowledgement.
package celcondition

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celtypes "github.com/google/cel-go/common/types"
)

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("statusCode", cel.IntType),
		cel.Variable("contentType", cel.StringType),
		cel.Variable("body", cel.StringType),
		cel.Variable("bodyLength", cel.IntType),
		cel.CrossTypeNumericComparisons(true),
	)
}

// PrepareCondition compiles the condition and checks that it yields a bool.
func PrepareCondition(celCondition string) (cel.Program, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(celCondition)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to program CEL expression: %w", err)
	}
	out, _, err := prg.Eval(vars(0, "", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate CEL condition: %w", err)
	}
	if out.Type() != celtypes.BoolType {
		return nil, fmt.Errorf("output type is not bool: %s", out.Type())
	}
	return prg, nil
}

// EvaluateCondition runs a prepared program against a response.
func EvaluateCondition(prg cel.Program, statusCode int, contentType string, body string) (bool, error) {
	if prg == nil {
		return false, fmt.Errorf("program is nil")
	}
	out, _, err := prg.Eval(vars(statusCode, contentType, body))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate CEL condition: %w", err)
	}
	return out.Type() == celtypes.BoolType && out.Value() == true, nil
}

func vars(statusCode int, contentType string, body string) map[string]any {
	return map[string]any{
		"statusCode":  int64(statusCode),
		"contentType": contentType,
		"body":        body,
		"bodyLength":  int64(len(body)),
	}
}

// AckRule adapts a prepared program to the classifier policy.
type AckRule struct {
	prg cel.Program
}

// NewAckRule compiles condition into an AckRule.
func NewAckRule(condition string) (*AckRule, error) {
	prg, err := PrepareCondition(condition)
	if err != nil {
		return nil, err
	}
	return &AckRule{prg: prg}, nil
}

func (r *AckRule) Match(statusCode int, contentType string, body string) (bool, error) {
	return EvaluateCondition(r.prg, statusCode, contentType, body)
}
