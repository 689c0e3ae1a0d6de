package downloader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilenameFromDisposition(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		header string

		want string
	}{
		"No header":                 {},
		"Blank header":              {header: "  "},
		"Quoted filename":           {header: `attachment; filename="report.pdf"`, want: "report.pdf"},
		"Token filename":            {header: `attachment; filename=report.pdf`, want: "report.pdf"},
		"Inline with filename":      {header: `inline; filename="image.png"`, want: "image.png"},
		"Filename with spaces":      {header: `attachment; filename="my report.xlsx"`, want: "my report.xlsx"},
		"Disposition type only":     {header: `attachment`},
		"Other parameters only":     {header: `attachment; size=42`},
		"Extended UTF-8 filename":   {header: `attachment; filename*=UTF-8''na%C3%AFve%20file.txt`, want: "naïve file.txt"},
		"Extended wins over plain":  {header: `attachment; filename="plain.txt"; filename*=utf-8''fancy.txt`, want: "fancy.txt"},
		"Extended Latin-1 filename": {header: `attachment; filename="fallback.txt"; filename*=iso-8859-1''caf%E9.txt`, want: "café.txt"},
		"Extended with language":    {header: `attachment; filename*=UTF-8'en'notes.md`, want: "notes.md"},

		"Unknown charset falls back to plain":  {header: `attachment; filename="plain.txt"; filename*=x-unknown-charset''x.txt`, want: "plain.txt"},
		"Bad escape falls back to plain":       {header: `attachment; filename="plain.txt"; filename*=UTF-8''%ZZ`, want: "plain.txt"},
		"Invalid UTF-8 is rejected":            {header: `attachment; filename="plain.txt"; filename*=UTF-8''%FF.txt`},
		"Malformed extended value is ignored":  {header: `attachment; filename="plain.txt"; filename*=noquotes.txt`, want: "plain.txt"},
		"Unterminated quote uses legacy split": {header: `attachment; filename="a b.pdf`, want: "a b.pdf"},
		"Missing disposition type":             {header: `filename=report.pdf`, want: "report.pdf"},
		"Malformed without filename":           {header: `attachment; ;;`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := filenameFromDisposition(tc.header)
			require.Equal(t, tc.want, got, "filenameFromDisposition returned an unexpected filename")
		})
	}
}

func TestCheckFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name string

		wantErr bool
	}{
		"Plain name":  {name: "report.pdf"},
		"Hidden name": {name: ".hidden"},
		"Dotted name": {name: "archive.tar.gz"},
		"Unicode":     {name: "café.txt"},

		"Empty":             {name: "", wantErr: true},
		"Current directory": {name: ".", wantErr: true},
		"Parent directory":  {name: "..", wantErr: true},
		"Parent traversal":  {name: "../evil.txt", wantErr: true},
		"Sub directory":     {name: "a/b.txt", wantErr: true},
		"Absolute path":     {name: "/etc/passwd", wantErr: true},
		"Windows separator": {name: `..\evil.txt`, wantErr: true},
		"Embedded NUL":      {name: "evil\x00.txt", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := checkFilename(tc.name)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnsafeFilename)
				return
			}
			require.NoError(t, err)
		})
	}
}
