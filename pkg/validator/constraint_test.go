// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package validator

import (
	"testing"
)

func TestParseConstraintExpression(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantOp      Operator
		wantValue   string
		expectError bool
	}{
		// Comparison operators
		{name: "greater or equal", expression: ">= 0.1.4", wantOp: OperatorGTE, wantValue: "0.1.4"},
		{name: "less or equal", expression: "<= 1.33", wantOp: OperatorLTE, wantValue: "1.33"},
		{name: "greater than", expression: "> 1.30", wantOp: OperatorGT, wantValue: "1.30"},
		{name: "less than", expression: "< 2.0", wantOp: OperatorLT, wantValue: "2.0"},
		{name: "equal op", expression: "== linux", wantOp: OperatorEQ, wantValue: "linux"},
		{name: "not equal", expression: "!= windows", wantOp: OperatorNE, wantValue: "windows"},

		// Exact match (no operator)
		{name: "exact match simple", expression: "linux", wantOp: OperatorExact, wantValue: "linux"},
		{name: "exact match version", expression: "10.3", wantOp: OperatorExact, wantValue: "10.3"},
		{name: "exact match with dots", expression: "v0.1.5", wantOp: OperatorExact, wantValue: "v0.1.5"},

		// Whitespace handling
		{name: "extra spaces", expression: ">=  0.1.4", wantOp: OperatorGTE, wantValue: "0.1.4"},
		{name: "leading space", expression: " >= 0.1.4", wantOp: OperatorGTE, wantValue: "0.1.4"},
		{name: "trailing space", expression: ">= 0.1.4 ", wantOp: OperatorGTE, wantValue: "0.1.4"},
		{name: "no space after operator", expression: ">=0.2", wantOp: OperatorGTE, wantValue: "0.2"},
		{name: "no space with gt", expression: ">1.30", wantOp: OperatorGT, wantValue: "1.30"},
		{name: "no space with lte", expression: "<=1.33", wantOp: OperatorLTE, wantValue: "1.33"},
		{name: "no space with lt", expression: "<2.0", wantOp: OperatorLT, wantValue: "2.0"},
		{name: "no space with eq", expression: "==linux", wantOp: OperatorEQ, wantValue: "linux"},
		{name: "no space with ne", expression: "!=windows", wantOp: OperatorNE, wantValue: "windows"},

		// Error cases
		{name: "empty expression", expression: "", expectError: true},
		{name: "only spaces", expression: "   ", expectError: true},
		{name: "operator without value", expression: ">=", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseConstraintExpression(tt.expression)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Operator != tt.wantOp {
				t.Errorf("operator = %v, want %v", result.Operator, tt.wantOp)
			}
			if result.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", result.Value, tt.wantValue)
			}
		})
	}
}

func TestParsedConstraint_Evaluate(t *testing.T) {
	tests := []struct {
		name        string
		constraint  ParsedConstraint
		actual      string
		want        bool
		expectError bool
	}{
		// Version comparisons
		{
			name:       "version gte - pass exact",
			constraint: ParsedConstraint{Operator: OperatorGTE, Value: "0.1.4"},
			actual:     "0.1.4",
			want:       true,
		},
		{
			name:       "version gte - pass higher",
			constraint: ParsedConstraint{Operator: OperatorGTE, Value: "0.1.4"},
			actual:     "v0.2.1-rc.1",
			want:       true,
		},
		{
			name:       "version gte - fail lower",
			constraint: ParsedConstraint{Operator: OperatorGTE, Value: "0.1.4"},
			actual:     "0.1.0",
			want:       false,
		},
		{
			name:       "version lte - pass exact",
			constraint: ParsedConstraint{Operator: OperatorLTE, Value: "1.33"},
			actual:     "1.33.0",
			want:       true,
		},
		{
			name:       "version lte - pass lower",
			constraint: ParsedConstraint{Operator: OperatorLTE, Value: "1.33"},
			actual:     "1.32.0",
			want:       true,
		},
		{
			name:       "version lte - fail higher",
			constraint: ParsedConstraint{Operator: OperatorLTE, Value: "1.33"},
			actual:     "1.34.0",
			want:       false,
		},
		{
			name:       "version gt - pass higher",
			constraint: ParsedConstraint{Operator: OperatorGT, Value: "1.30"},
			actual:     "1.32.0",
			want:       true,
		},
		{
			name:       "version gt - fail equal",
			constraint: ParsedConstraint{Operator: OperatorGT, Value: "1.30"},
			actual:     "1.30.0",
			want:       false,
		},
		{
			name:       "version lt - pass lower",
			constraint: ParsedConstraint{Operator: OperatorLT, Value: "2.0"},
			actual:     "1.30.0",
			want:       true,
		},
		{
			name:       "version lt - fail equal",
			constraint: ParsedConstraint{Operator: OperatorLT, Value: "2.0"},
			actual:     "2.0.0",
			want:       false,
		},

		// Versions with build suffixes
		{
			name:       "suffixed version gte - pass",
			constraint: ParsedConstraint{Operator: OperatorGTE, Value: "10.3"},
			actual:     "10.3.2-stable",
			want:       true,
		},
		{
			name:       "suffixed version gte - fail",
			constraint: ParsedConstraint{Operator: OperatorGTE, Value: "10.3"},
			actual:     "9.5.11-lts",
			want:       false,
		},

		// String equality
		{
			name:       "equal op - pass",
			constraint: ParsedConstraint{Operator: OperatorEQ, Value: "linux"},
			actual:     "linux",
			want:       true,
		},
		{
			name:       "equal op - fail",
			constraint: ParsedConstraint{Operator: OperatorEQ, Value: "linux"},
			actual:     "darwin",
			want:       false,
		},
		{
			name:       "not equal - pass",
			constraint: ParsedConstraint{Operator: OperatorNE, Value: "windows"},
			actual:     "linux",
			want:       true,
		},
		{
			name:       "not equal - fail",
			constraint: ParsedConstraint{Operator: OperatorNE, Value: "windows"},
			actual:     "windows",
			want:       false,
		},

		// Exact match
		{
			name:       "exact match - pass",
			constraint: ParsedConstraint{Operator: OperatorExact, Value: "10.3"},
			actual:     "10.3",
			want:       true,
		},
		{
			name:       "exact match - fail",
			constraint: ParsedConstraint{Operator: OperatorExact, Value: "10.3"},
			actual:     "9.5",
			want:       false,
		},

		// Case sensitivity
		{
			name:       "exact match case sensitive",
			constraint: ParsedConstraint{Operator: OperatorExact, Value: "Linux"},
			actual:     "linux",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.constraint.Evaluate(tt.actual)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.actual, result, tt.want)
			}
		})
	}
}
