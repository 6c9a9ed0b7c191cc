// Package api provides the REST API server for lisp2mxl
package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/james-see/lisp2mxl/pkg/compiler"
	"github.com/james-see/lisp2mxl/pkg/duration"
	"github.com/james-see/lisp2mxl/pkg/midiconv"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

// @title lisp2mxl API
// @version 1.0
// @description API for compiling Lisp-like music notation to MusicXML and MIDI
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/compile", handleCompile)
		v1.POST("/compile/midi", handleCompileMIDI)
		v1.POST("/parse", handleParse)
		v1.GET("/durations", listDurations)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lisp2mxl",
	})
}

// listDurations godoc
// @Summary List duration tokens
// @Description Returns every accepted duration token spelling and its note value
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]string
// @Router /api/v1/durations [get]
func listDurations(c *gin.Context) {
	entries := duration.Tokens()
	out := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]string{
			"token": e.Token,
			"value": e.Base.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"durations": out})
}

// handleCompile godoc
// @Summary Compile notation to MusicXML
// @Description Upload a .lmn notation file and receive a MusicXML file
// @Tags compile
// @Accept multipart/form-data
// @Produce application/vnd.recordare.musicxml+xml
// @Param file formData file true "Notation file to compile"
// @Param divisions query int false "Divisions per quarter note (default: 960)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/compile [post]
func handleCompile(c *gin.Context) {
	src, name, ok := readUpload(c)
	if !ok {
		return
	}

	score, err := compiler.Compile(src, compileOptions(c))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName(name, ".musicxml")))
	c.Data(http.StatusOK, "application/vnd.recordare.musicxml+xml", []byte(musicxml.Encode(score)))
}

// handleCompileMIDI godoc
// @Summary Compile notation to MIDI
// @Description Upload a .lmn notation file and receive a Standard MIDI File
// @Tags compile
// @Accept multipart/form-data
// @Produce audio/midi
// @Param file formData file true "Notation file to compile"
// @Param divisions query int false "Divisions per quarter note (default: 960)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/compile/midi [post]
func handleCompileMIDI(c *gin.Context) {
	src, name, ok := readUpload(c)
	if !ok {
		return
	}

	score, err := compiler.Compile(src, compileOptions(c))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	data, err := midiconv.New().Generate(score)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName(name, ".mid")))
	c.Data(http.StatusOK, "audio/midi", data)
}

// ScoreSummary is the JSON shape returned by the parse endpoint.
type ScoreSummary struct {
	Title string        `json:"title,omitempty"`
	Parts []PartSummary `json:"parts"`
}

// PartSummary describes one part of a parsed score.
type PartSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Measures int    `json:"measures"`
	Notes    int    `json:"notes"`
}

// handleParse godoc
// @Summary Parse a MusicXML file
// @Description Upload a MusicXML file and receive a structural summary
// @Tags parse
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} ScoreSummary
// @Failure 400 {object} map[string]string
// @Router /api/v1/parse [post]
func handleParse(c *gin.Context) {
	src, _, ok := readUpload(c)
	if !ok {
		return
	}

	score, err := musicxml.DecodeString(src)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, Summarize(score))
}

// Summarize reduces a score to the part/measure/note counts the parse
// endpoint and the inspect command report.
func Summarize(score *musicxml.ScorePartwise) ScoreSummary {
	summary := ScoreSummary{Parts: []PartSummary{}}
	if score.Work != nil {
		summary.Title = score.Work.Title
	}
	names := map[string]string{}
	for _, sp := range score.PartList {
		names[sp.ID] = sp.Name
	}
	for i := range score.Parts {
		part := &score.Parts[i]
		ps := PartSummary{ID: part.ID, Name: names[part.ID], Measures: len(part.Measures)}
		for _, m := range part.Measures {
			for _, data := range m.Content {
				if _, isNote := data.(*musicxml.Note); isNote {
					ps.Notes++
				}
			}
		}
		summary.Parts = append(summary.Parts, ps)
	}
	return summary
}

func readUpload(c *gin.Context) (content, filename string, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return "", "", false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return "", "", false
	}
	return string(data), header.Filename, true
}

func compileOptions(c *gin.Context) compiler.Options {
	opts := compiler.Options{}
	if raw := c.Query("divisions"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			opts.Divisions = v
		}
	}
	return opts
}

// outputName derives the download filename from the upload name, falling
// back to a fresh uuid when the upload name is unusable.
func outputName(uploadName, ext string) string {
	base := strings.TrimSuffix(filepath.Base(uploadName), filepath.Ext(uploadName))
	if base == "" || base == "." {
		return uuid.NewString() + ext
	}
	return base + ext
}
