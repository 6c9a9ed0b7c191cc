// Package convert dispatches file conversions between the formats the
// tool understands: .lmn notation sources, MusicXML scores and Standard
// MIDI Files.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/lisp2mxl/pkg/compiler"
	"github.com/james-see/lisp2mxl/pkg/midiconv"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

// Format represents a file format
type Format string

const (
	FormatNotation Format = "lmn"
	FormatMusicXML Format = "musicxml"
	FormatMIDI     Format = "midi"
	FormatUnknown  Format = "unknown"
)

// DetectFormat detects the format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".lmn":
		return FormatNotation
	case ".musicxml", ".xml":
		return FormatMusicXML
	case ".mid", ".midi":
		return FormatMIDI
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}

	// Check for MIDI file signature "MThd"
	if string(data[:4]) == "MThd" {
		return FormatMIDI
	}

	// XML documents and notation sources are both text; tell them apart
	// by the first non-whitespace byte.
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	switch {
	case strings.HasPrefix(trimmed, "<"):
		return FormatMusicXML
	case strings.HasPrefix(trimmed, "(") || strings.HasPrefix(trimmed, ";"):
		return FormatNotation
	}

	return FormatUnknown
}

// Converter converts between the supported file formats.
type Converter struct {
	opts compiler.Options
}

// New creates a Converter that compiles notation with the given options.
func New(opts compiler.Options) *Converter {
	return &Converter{opts: opts}
}

// ConvertFile converts a file from one format to another, inferring both
// formats from the filenames (falling back to content sniffing for the
// input).
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	inputFormat := DetectFormat(inputPath)
	outputFormat := DetectFormat(outputPath)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	if inputFormat == FormatUnknown {
		inputFormat = DetectFormatFromContent(data)
	}

	if outputFormat == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	var outputData []byte

	switch {
	case inputFormat == FormatNotation && outputFormat == FormatMusicXML:
		outputData, err = c.NotationToMusicXML(data)
	case inputFormat == FormatNotation && outputFormat == FormatMIDI:
		outputData, err = c.NotationToMIDI(data)
	case inputFormat == FormatMusicXML && outputFormat == FormatMIDI:
		outputData, err = c.MusicXMLToMIDI(data)
	case inputFormat == FormatMusicXML && outputFormat == FormatMusicXML:
		// Decode and re-encode, normalizing the document.
		outputData, err = c.NormalizeMusicXML(data)
	default:
		return fmt.Errorf("unsupported conversion: %s to %s", inputFormat, outputFormat)
	}

	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// NotationToMusicXML compiles notation source to a MusicXML document
func (c *Converter) NotationToMusicXML(src []byte) ([]byte, error) {
	score, err := compiler.Compile(string(src), c.opts)
	if err != nil {
		return nil, err
	}
	return []byte(musicxml.Encode(score)), nil
}

// NotationToMIDI compiles notation source straight to a Standard MIDI File
func (c *Converter) NotationToMIDI(src []byte) ([]byte, error) {
	score, err := compiler.Compile(string(src), c.opts)
	if err != nil {
		return nil, err
	}
	return midiconv.New().Generate(score)
}

// MusicXMLToMIDI renders a MusicXML document as a Standard MIDI File
func (c *Converter) MusicXMLToMIDI(doc []byte) ([]byte, error) {
	score, err := musicxml.DecodeString(string(doc))
	if err != nil {
		return nil, err
	}
	return midiconv.New().Generate(score)
}

// NormalizeMusicXML parses a MusicXML document and re-serializes it in
// the canonical element order this tool emits.
func (c *Converter) NormalizeMusicXML(doc []byte) ([]byte, error) {
	score, err := musicxml.DecodeString(string(doc))
	if err != nil {
		return nil, err
	}
	return []byte(musicxml.Encode(score)), nil
}

// GetSupportedConversions returns a list of supported conversion paths
func GetSupportedConversions() []string {
	return []string{
		"lmn -> musicxml",
		"lmn -> midi",
		"musicxml -> midi",
		"musicxml -> musicxml (normalize)",
	}
}
