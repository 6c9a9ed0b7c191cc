// Package main is the entry point for the lisp2mxl CLI
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/james-see/lisp2mxl/pkg/api"
	"github.com/james-see/lisp2mxl/pkg/compiler"
	"github.com/james-see/lisp2mxl/pkg/convert"
	"github.com/james-see/lisp2mxl/pkg/duration"
	"github.com/james-see/lisp2mxl/pkg/midiconv"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
	"github.com/james-see/lisp2mxl/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile    string
	outputFile string
	scoreTitle string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lisp2mxl",
	Short: "Compile Lisp-like music notation to MusicXML and MIDI",
	Long: `lisp2mxl compiles a Lisp-like music notation language (.lmn files)
into MusicXML scores, and can render either format as a Standard MIDI File.

Examples:
  lisp2mxl convert tune.lmn -o tune.mid
  lisp2mxl compile tune.lmn -o tune.musicxml
  lisp2mxl compile tune.lmn --divisions 480
  lisp2mxl midi tune.lmn -o tune.mid
  lisp2mxl mxl2midi score.musicxml
  lisp2mxl inspect score.musicxml
  lisp2mxl durations
  lisp2mxl tui
  lisp2mxl serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Auto-detect and convert between formats",
	Long:  `Automatically detects input format and converts to the output format based on file extension.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var compileCmd = &cobra.Command{
	Use:   "compile <input.lmn>",
	Short: "Compile notation to MusicXML",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

var midiCmd = &cobra.Command{
	Use:   "midi <input.lmn>",
	Short: "Compile notation straight to a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMIDI,
}

var mxl2midiCmd = &cobra.Command{
	Use:   "mxl2midi <input.musicxml>",
	Short: "Render a MusicXML score as a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMXLToMIDI,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.musicxml>",
	Short: "Summarize the parts and measures of a MusicXML score",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var durationsCmd = &cobra.Command{
	Use:   "durations",
	Short: "List the accepted duration token spellings",
	RunE:  runDurations,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $HOME/.lisp2mxl.yaml)")
	rootCmd.PersistentFlags().Int("divisions", compiler.DefaultDivisions, "Divisions per quarter note")
	_ = viper.BindPFlag("divisions", rootCmd.PersistentFlags().Lookup("divisions"))

	// convert command
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	_ = convertCmd.MarkFlagRequired("output")

	// compile command
	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .musicxml file path")
	compileCmd.Flags().StringVarP(&scoreTitle, "title", "t", "", "Score title override")

	// midi command
	midiCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")

	// mxl2midi command
	mxl2midiCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")

	// serve command
	serveCmd.Flags().IntP("port", "p", 8080, "Server port")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	// Add commands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(mxl2midiCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(durationsCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".lisp2mxl")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LISP2MXL")
	viper.AutomaticEnv()

	// A missing config file is fine; a malformed one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		}
	}
}

func compileOptions() compiler.Options {
	return compiler.Options{
		Divisions: viper.GetInt("divisions"),
		Title:     scoreTitle,
	}
}

func getOutputPath(input, defaultExt string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + defaultExt
}

func compileFile(input string) (*musicxml.ScorePartwise, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(string(data), compileOptions())
}

func decodeFile(input string) (*musicxml.ScorePartwise, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return musicxml.Decode(f)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	conv := convert.New(compileOptions())

	fmt.Printf("Converting %s -> %s\n", input, outputFile)
	if err := conv.ConvertFile(input, outputFile); err != nil {
		return err
	}
	fmt.Println("Conversion complete!")
	return nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".musicxml")

	score, err := compileFile(input)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, []byte(musicxml.Encode(score)), 0644); err != nil {
		return err
	}

	fmt.Printf("Compiled %s -> %s\n", input, output)
	return nil
}

func runMIDI(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".mid")

	score, err := compileFile(input)
	if err != nil {
		return err
	}

	if err := midiconv.New().WriteFile(score, output); err != nil {
		return err
	}

	fmt.Printf("Compiled %s -> %s\n", input, output)
	return nil
}

func runMXLToMIDI(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, ".mid")

	score, err := decodeFile(input)
	if err != nil {
		return err
	}

	if err := midiconv.New().WriteFile(score, output); err != nil {
		return err
	}

	fmt.Printf("Rendered %s -> %s\n", input, output)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	score, err := decodeFile(args[0])
	if err != nil {
		return err
	}

	summary := api.Summarize(score)
	if summary.Title != "" {
		fmt.Printf("Title: %s\n", summary.Title)
	}
	fmt.Printf("Parts: %d\n", len(summary.Parts))
	for _, p := range summary.Parts {
		fmt.Printf("  %s (%s): %d measures, %d notes\n", p.ID, p.Name, p.Measures, p.Notes)
	}
	return nil
}

func runDurations(cmd *cobra.Command, args []string) error {
	for _, e := range duration.Tokens() {
		fmt.Printf("%-10s %s\n", e.Token, e.Base.String())
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	port := viper.GetInt("port")
	fmt.Printf("Starting API server on port %d...\n", port)
	return api.StartServer(port)
}
