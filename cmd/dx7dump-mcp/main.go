// Command dx7dump-mcp serves read-only DX7 dump analysis tools over the Model
// Context Protocol on stdin/stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fjl/dx7dump/dx7"
	"github.com/fjl/dx7dump/internal/cmdutil"
	"github.com/fjl/dx7dump/internal/render"
	"github.com/fjl/dx7dump/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var logger = slog.Default()

// initLogger sends all log output to stderr. Stdout carries the protocol.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func main() {
	var (
		debug = flag.Bool("debug", false, "enable debug logging")
		ascii = flag.Bool("ascii", false, "render names and algorithms in ASCII")
	)
	flag.Parse()
	initLogger(*debug)
	logger.Info("dx7dump-mcp starting", "version", version.String(), "ascii", *ascii)

	s := newServer(&toolHandler{unicode: !*ascii})
	if err := server.ServeStdio(s); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func newServer(h *toolHandler) *server.MCPServer {
	s := server.NewMCPServer(
		"DX7 Dump",
		version.String(),
		server.WithToolCapabilities(false),
	)

	describeTool := mcp.NewTool("dx7_describe-file",
		mcp.WithDescription("Decodes a DX7 sysex or headerless bank file. Returns framing diagnostics and all voice parameters as JSON."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the dump file.")),
	)
	s.AddTool(describeTool, h.describeFile)

	voiceTool := mcp.NewTool("dx7_get-voice",
		mcp.WithDescription("Returns the parameters of one voice in a DX7 dump file as JSON."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the dump file.")),
		mcp.WithNumber("voice", mcp.Required(), mcp.Description("The voice number (1-32 for banks, 1 for single voice dumps).")),
	)
	s.AddTool(voiceTool, h.getVoice)

	namesTool := mcp.NewTool("dx7_list-names",
		mcp.WithDescription("Lists the voice names of a DX7 dump file."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the dump file.")),
	)
	s.AddTool(namesTool, h.listNames)

	dupesTool := mcp.NewTool("dx7_find-duplicates",
		mcp.WithDescription("Reports pairs of voices in a DX7 bank that differ only in their name."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the bank file.")),
	)
	s.AddTool(dupesTool, h.findDuplicates)
	return s
}

type toolHandler struct {
	unicode bool
}

// open loads the file named by the "path" argument. A non-nil result is
// returned to the client as a tool error.
func (h *toolHandler) open(request mcp.CallToolRequest) (*dx7.File, string, *mcp.CallToolResult) {
	path, err := request.RequireString("path")
	if err != nil {
		return nil, "", mcp.NewToolResultError(err.Error())
	}
	ctx, err := cmdutil.Open(path)
	if err != nil {
		logger.Debug("open failed", "path", path, "err", err)
		return nil, path, mcp.NewToolResultError(err.Error())
	}
	return ctx.File, path, nil
}

func (h *toolHandler) describeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, path, res := h.open(request)
	if res != nil {
		return res, nil
	}
	logger.Debug("describe file", "path", path, "shape", f.Shape)
	return jsonResult(render.NewFileView(path, f, 0, h.unicode))
}

func (h *toolHandler) getVoice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, path, res := h.open(request)
	if res != nil {
		return res, nil
	}
	n, err := request.RequireInt("voice")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := f.VoiceAt(n)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	logger.Debug("get voice", "path", path, "voice", n)
	return jsonResult(render.NewVoiceView(n, v, h.unicode))
}

type voiceName struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

func (h *toolHandler) listNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, _, res := h.open(request)
	if res != nil {
		return res, nil
	}
	names := make([]voiceName, 0, f.NumVoices())
	for n := 1; n <= f.NumVoices(); n++ {
		v, _ := f.VoiceAt(n)
		names = append(names, voiceName{n, v.Name.Text(h.unicode)})
	}
	return jsonResult(names)
}

func (h *toolHandler) findDuplicates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, _, res := h.open(request)
	if res != nil {
		return res, nil
	}
	if f.Bank == nil {
		return mcp.NewToolResultError("duplicates can only be found in banks"), nil
	}
	dupes := dx7.FindDuplicates(f.Bank)
	lines := make([]string, len(dupes))
	for i, d := range dupes {
		lines[i] = "Found duplicate: " + d.String()
	}
	return jsonResult(lines)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	asJson, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result to JSON: %v", err)
	}
	return mcp.NewToolResultText(string(asJson)), nil
}
