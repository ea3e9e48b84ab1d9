package chart

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSVGCanvas_TextContentEscaped(t *testing.T) {
	canvas := NewSVGCanvas(800, 400)
	canvas.FillText(10, 20, "support & resistance <zone>", TextStyle{Color: "#fff", Size: 14})

	svg := string(canvas.Bytes())
	require.Contains(t, svg, "support &amp; resistance &lt;zone&gt;")
	require.NotContains(t, svg, "resistance <zone>")
}

func TestSVGCanvas_OutputIsWellFormed(t *testing.T) {
	canvas := NewSVGCanvas(800, 400)
	canvas.StrokeLine(0, 0, 10, 10, Stroke{Color: "#2962ff", Width: 2})
	canvas.FillText(10, 20, "a < b && c > d", TextStyle{Color: "#fff", Size: 14})

	decoder := xml.NewDecoder(strings.NewReader(string(canvas.Bytes())))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
}

func TestSVGCanvas_ClearEmptiesDocument(t *testing.T) {
	canvas := NewSVGCanvas(800, 400)
	canvas.FillCircle(5, 5, 2, "#fff")
	canvas.Clear()

	require.NotContains(t, string(canvas.Bytes()), "<circle")
}
