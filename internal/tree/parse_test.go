// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(s *Section) []Entry {
	out := make([]Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, *e)
	}
	return out
}

func TestParse_Basic(t *testing.T) {
	tr, err := Parse(strings.NewReader("[Desktop]\r\nWallpaper=foo.bmp\r\n"))
	require.NoError(t, err)

	require.Len(t, tr.Sections, 2)
	assert.Empty(t, tr.Sections[0].Entries)
	assert.Equal(t, "Desktop", tr.Sections[1].Name)
	assert.Equal(t, []Entry{{Name: "Wallpaper", Value: "foo.bmp", HasValue: true}}, entries(tr.Sections[1]))
	assert.Equal(t, EncodingPlain, tr.Encoding)
}

func TestParse_Lines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Entry
	}{
		{
			name: "split at first equals",
			in:   "[s]\nk=a=b\n",
			want: []Entry{{Name: "k", Value: "a=b", HasValue: true}},
		},
		{
			name: "name trimmed value left trimmed",
			in:   "[s]\n  key  =   value  \n",
			want: []Entry{{Name: "key", Value: "value", HasValue: true}},
		},
		{
			name: "bare name",
			in:   "[s]\n  just text \n",
			want: []Entry{{Name: "just text"}},
		},
		{
			name: "empty value",
			in:   "[s]\nk=\n",
			want: []Entry{{Name: "k", HasValue: true}},
		},
		{
			name: "semicolon is not a comment",
			in:   "[s]\n;note=1\n",
			want: []Entry{{Name: ";note", Value: "1", HasValue: true}},
		},
		{
			name: "control characters stripped",
			in:   "[s]\r\nk=v\r\x1a\n",
			want: []Entry{{Name: "k", Value: "v", HasValue: true}},
		},
		{
			name: "no trailing newline",
			in:   "[s]\r\nk=v",
			want: []Entry{{Name: "k", Value: "v", HasValue: true}},
		},
		{
			name: "blank runs collapse",
			in:   "[s]\na=1\n\n\n\nb=2\n",
			want: []Entry{
				{Name: "a", Value: "1", HasValue: true},
				{},
				{Name: "b", Value: "2", HasValue: true},
			},
		},
		{
			name: "trailing blanks at end of file",
			in:   "[s]\na=1\n\n\n",
			want: []Entry{{Name: "a", Value: "1", HasValue: true}, {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := ParseBytes([]byte(tt.in))
			require.NoError(t, err)
			s := tr.Section("s")
			require.NotNil(t, s)
			assert.Equal(t, tt.want, entries(s))
		})
	}
}

func TestParse_SeparatorBeforeHeader(t *testing.T) {
	tr, err := ParseBytes([]byte("[a]\r\nx=1\r\n\r\n[b]\r\ny=2\r\n\r\n\r\n\r\n[c]\r\n"))
	require.NoError(t, err)

	assert.Len(t, tr.Section("a").Entries, 1, "single blank is the separator")
	assert.Len(t, tr.Section("b").Entries, 2, "extra blanks keep one blank entry")
	assert.True(t, tr.Section("b").Entries[1].IsBlank())
}

func TestParse_MalformedHeaderSkipped(t *testing.T) {
	tr, err := ParseBytes([]byte("[a]\r\nx=1\r\n[broken\r\ny=2\r\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, tr.SectionNames())
	assert.Equal(t, []Entry{
		{Name: "x", Value: "1", HasValue: true},
		{Name: "y", Value: "2", HasValue: true},
	}, entries(tr.Section("a")))
}

func TestParse_EmptyHeaderStartsSection(t *testing.T) {
	tr, err := ParseBytes([]byte("[a]\r\nx=1\r\n[ ]\r\nz=3\r\n"))
	require.NoError(t, err)

	require.Len(t, tr.Sections, 3)
	assert.Equal(t, []string{"a"}, tr.SectionNames())
	assert.Equal(t, []Entry{{Name: "x", Value: "1", HasValue: true}}, entries(tr.Section("a")))

	unnamed := tr.Sections[2]
	assert.True(t, unnamed.Header)
	assert.False(t, unnamed.Addressable())
	assert.Equal(t, []Entry{{Name: "z", Value: "3", HasValue: true}}, entries(unnamed))

	assert.Nil(t, tr.Section(""))
	lead, created := tr.FindOrCreateSection("")
	assert.False(t, created)
	assert.Same(t, tr.Sections[0], lead)
	assert.False(t, tr.DeleteSection(""))

	assert.Equal(t, "[a]\r\nx=1\r\n\r\n[]\r\nz=3\r\n", tr.String())
}

func TestParse_HeaderUsesLastBracket(t *testing.T) {
	tr, err := ParseBytes([]byte("  [ a]b ] trailing\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a]b"}, tr.SectionNames())
}

func TestParse_LeadingEntries(t *testing.T) {
	tr, err := ParseBytes([]byte("top=1\r\n\r\n[a]\r\n"))
	require.NoError(t, err)

	assert.Equal(t, []Entry{{Name: "top", Value: "1", HasValue: true}}, entries(tr.Sections[0]))
}

func TestWrite_Format(t *testing.T) {
	tr := New()
	tr.Sections[0].Entries = append(tr.Sections[0].Entries, &Entry{Name: "top", Value: "1", HasValue: true})
	a, _ := tr.FindOrCreateSection("a")
	a.Entries = append(a.Entries, &Entry{Name: "bare"}, &Entry{Name: "k", Value: "v", HasValue: true})
	tr.FindOrCreateSection("b")

	var buf bytes.Buffer
	_, err := tr.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "top=1\r\n\r\n[a]\r\nbare\r\nk=v\r\n\r\n[b]\r\n", buf.String())
}

func TestWrite_NoLeadingSeparator(t *testing.T) {
	tr := New()
	tr.FindOrCreateSection("a")
	assert.Equal(t, "[a]\r\n", tr.String())
}

// TestRoundTrip checks that parse(serialize(T)) reproduces T for trees whose
// blank runs are already collapsed.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"[Desktop]\r\nWallpaper=foo.bmp\r\n",
		"top=1\r\nbare\r\n\r\n[a]\r\nx=1\r\n\r\ny=\r\n\r\n\r\n[b]\r\n=only value\r\n",
		"\r\n\r\n[a]\r\n\r\nx=1\r\n",
		"[a]\r\n[b]\r\n[a]\r\nk=v\r\n\r\n",
		"[a]\r\nx=1\r\n\r\n[]\r\nz=3\r\n\r\n[b]\r\n",
		"[]\r\nk=v\r\n",
		"",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := ParseBytes([]byte(in))
			require.NoError(t, err)

			second, err := ParseBytes([]byte(first.String()))
			require.NoError(t, err)
			assert.Equal(t, first, second)

			assert.Equal(t, first.String(), second.String(), "serialization is stable")
		})
	}
}

func TestEncoding_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
	}{
		{"utf-8 bom", EncodingUTF8BOM},
		{"utf-16le", EncodingUTF16LE},
		{"utf-16be", EncodingUTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			tr.Encoding = tt.enc
			s, _ := tr.FindOrCreateSection("Größe")
			e, _ := s.FindOrCreateEntry("Name")
			e.SetValue("Jürgen")

			b, err := tr.Bytes()
			require.NoError(t, err)
			assert.Equal(t, tt.enc, DetectEncoding(b))

			back, err := ParseBytes(b)
			require.NoError(t, err)
			assert.Equal(t, tt.enc, back.Encoding)
			assert.Equal(t, "Jürgen", back.Section("größe").Entry("name").Value)
		})
	}
}

func TestDetectEncoding(t *testing.T) {
	assert.Equal(t, EncodingPlain, DetectEncoding([]byte("[a]")))
	assert.Equal(t, EncodingPlain, DetectEncoding(nil))
	assert.Equal(t, EncodingUTF8BOM, DetectEncoding([]byte{0xef, 0xbb, 0xbf, '['}))
	assert.Equal(t, EncodingUTF16LE, DetectEncoding([]byte{0xff, 0xfe, '[', 0}))
	assert.Equal(t, EncodingUTF16BE, DetectEncoding([]byte{0xfe, 0xff, 0, '['}))
}
