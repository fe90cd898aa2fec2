// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		delim string
		want  []Filter
	}{
		{name: "empty", spec: "", want: nil},
		{name: "equals", spec: "key=Wallpaper", want: []Filter{{Key: "key", Operand: "=", Value: "Wallpaper"}}},
		{name: "negated", spec: "value!=", want: []Filter{{Key: "value", Negate: true, Operand: "="}}},
		{
			name: "several",
			spec: "key^W, sections>1",
			want: []Filter{
				{Key: "key", Operand: "^", Value: "W"},
				{Key: "sections", Operand: ">", Value: "1"},
			},
		},
		{name: "custom delimiter", spec: "value@a,b", delim: ";", want: []Filter{{Key: "value", Operand: "@", Value: "a,b"}}},
		{name: "key only is skipped", spec: "key", want: nil},
		{name: "operand only is skipped", spec: "=x", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delim != "" {
				t.Setenv(EnvDelim, tt.delim)
			}
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		value  string
		filter Filter
		want   bool
	}{
		{"foo.bmp", Filter{Operand: "=", Value: "foo.bmp"}, true},
		{"foo.bmp", Filter{Operand: "=", Value: "foo.bmp", Negate: true}, false},
		{"FOO.bmp", Filter{Operand: "~", Value: "foo.BMP"}, true},
		{"foo.bmp", Filter{Operand: "^", Value: "foo"}, true},
		{"foo.bmp", Filter{Operand: "@", Value: ".bm"}, true},
		{"foo.bmp", Filter{Operand: "/", Value: `\.bmp$`}, true},
		{"foo.bmp", Filter{Operand: "/", Value: `(`}, false},
		{"b", Filter{Operand: ">", Value: "a"}, true},
		{"b", Filter{Operand: "<", Value: "a"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.filter), "%q %+v", tt.value, tt.filter)
	}
}

func TestCheckNumericOperand(t *testing.T) {
	assert.True(t, checkNumericOperand(10, Filter{Operand: ">", Value: "9"}))
	assert.False(t, checkNumericOperand(10, Filter{Operand: ">", Value: "9", Negate: true}))
	assert.True(t, checkNumericOperand(2, Filter{Operand: "<", Value: "10"}), "numeric, not lexical")
	assert.True(t, checkNumericOperand(2, Filter{Operand: "=", Value: " 2 "}))
	assert.True(t, checkNumericOperand(12, Filter{Operand: "^", Value: "1"}))
	assert.False(t, checkNumericOperand(12, Filter{Operand: "=", Value: "x"}))
}

func TestFilterDataset(t *testing.T) {
	dataset := []map[string]interface{}{
		{"key": "Wallpaper", "value": "foo.bmp", "sections": 3, "dirty": true, "modified": time.Time{}},
		{"key": "Tile", "value": "0", "sections": 1, "dirty": false, "modified": time.Time{}},
		{"key": "Pattern", "value": nil, "sections": 2, "dirty": false, "modified": time.Time{}},
	}

	keys := func(rows []map[string]interface{}) []string {
		var out []string
		for _, r := range rows {
			out = append(out, r["key"].(string))
		}
		return out
	}

	tests := []struct {
		spec string
		want []string
	}{
		{"", []string{"Wallpaper", "Tile", "Pattern"}},
		{"sections>1", []string{"Wallpaper", "Pattern"}},
		{"dirty=true", []string{"Wallpaper"}},
		{"value!=", []string{"Wallpaper", "Tile"}},
		{"key~tile", []string{"Tile"}},
		{"sections>1,key^P", []string{"Pattern"}},
		{"missing=x", []string{"Wallpaper", "Tile", "Pattern"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(FilterDataset(dataset, tt.spec)))
		})
	}
}
