/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package plan

import "testing"

func TestOperationKey(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want string
	}{
		{
			name: "extension key ignores recipe",
			op:   Operation{Kind: KindEnableExtension, Name: "comments", Recipe: "blog"},
			want: "enable-extension/comments",
		},
		{
			name: "config key ignores recipe",
			op:   Operation{Kind: KindImportConfig, Name: "blog-settings", Recipe: "blog"},
			want: "import-config/blog-settings",
		},
		{
			name: "action key includes recipe",
			op:   Operation{Kind: KindRunAction, Name: "rebuild-index", Recipe: "blog"},
			want: "run-action/blog/rebuild-index",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationKeyCollapsesAcrossRecipes(t *testing.T) {
	a := Operation{Kind: KindEnableExtension, Name: "comments", Recipe: "blog"}
	b := Operation{Kind: KindEnableExtension, Name: "comments", Recipe: "forum"}
	if a.Key() != b.Key() {
		t.Errorf("keys differ for the same extension: %q vs %q", a.Key(), b.Key())
	}

	x := Operation{Kind: KindRunAction, Name: "rebuild-index", Recipe: "blog"}
	y := Operation{Kind: KindRunAction, Name: "rebuild-index", Recipe: "forum"}
	if x.Key() == y.Key() {
		t.Error("action keys collide across recipes")
	}
}

func TestOperationDescription(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want string
	}{
		{
			name: "extension",
			op:   Operation{Kind: KindEnableExtension, Name: "comments"},
			want: "enable extension comments",
		},
		{
			name: "config",
			op:   Operation{Kind: KindImportConfig, Name: "blog-settings"},
			want: "import config blog-settings",
		},
		{
			name: "action",
			op:   Operation{Kind: KindRunAction, Name: "rebuild-index"},
			want: "run action rebuild-index",
		},
		{
			name: "unknown kind falls through",
			op:   Operation{Kind: Kind("custom"), Name: "thing"},
			want: "custom thing",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.Description(); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}
