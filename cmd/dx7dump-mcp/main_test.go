package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fjl/dx7dump/dx7"
	"github.com/fjl/dx7dump/internal/render"
	"github.com/mark3labs/mcp-go/mcp"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content %T", c)
		return ""
	}
}

func writeBank(t *testing.T, b *dx7.Bank) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.syx")
	if err := os.WriteFile(path, b.Sysex(0), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDescribeFile(t *testing.T) {
	path := writeBank(t, dx7.InitBank())
	h := &toolHandler{unicode: true}
	res, err := h.describeFile(context.Background(), callRequest(map[string]any{"path": path}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	var fv render.FileView
	if err := json.Unmarshal([]byte(resultText(t, res)), &fv); err != nil {
		t.Fatal(err)
	}
	if fv.Shape != "bank sysex" || len(fv.Voices) != dx7.NumVoices || fv.FixNeeded {
		t.Errorf("wrong file view: shape %q, %d voices, fixNeeded %v", fv.Shape, len(fv.Voices), fv.FixNeeded)
	}
	if fv.Voices[0].Topology != "2→1 + FB(6)→5→4→3" {
		t.Errorf("topology %q", fv.Voices[0].Topology)
	}
}

func TestGetVoice(t *testing.T) {
	b := dx7.InitBank()
	b.Voices[9].Name = dx7.NewName("E.PIANO 1")
	b.Voices[9].Algorithm = 4
	path := writeBank(t, b)
	h := &toolHandler{}

	res, _ := h.getVoice(context.Background(), callRequest(map[string]any{"path": path, "voice": 10}))
	var vv render.VoiceView
	if err := json.Unmarshal([]byte(resultText(t, res)), &vv); err != nil {
		t.Fatal(err)
	}
	if vv.Number != 10 || vv.Name != "E.PIANO 1 " || vv.Algorithm != 5 {
		t.Errorf("wrong voice: %+v", vv)
	}

	res, _ = h.getVoice(context.Background(), callRequest(map[string]any{"path": path, "voice": 33}))
	if !res.IsError {
		t.Error("voice 33 did not fail")
	}
}

func TestListNames(t *testing.T) {
	path := writeBank(t, dx7.InitBank())
	h := &toolHandler{}
	res, _ := h.listNames(context.Background(), callRequest(map[string]any{"path": path}))
	var names []voiceName
	if err := json.Unmarshal([]byte(resultText(t, res)), &names); err != nil {
		t.Fatal(err)
	}
	if len(names) != dx7.NumVoices || names[31].Number != 32 || names[31].Name != "INIT VOICE" {
		t.Errorf("wrong names: %v", names)
	}
}

func TestFindDuplicates(t *testing.T) {
	b := dx7.InitBank()
	for i := range b.Voices {
		b.Voices[i].Feedback = byte(i % 8)
		b.Voices[i].Algorithm = byte(i)
	}
	b.Voices[20] = b.Voices[3]
	b.Voices[20].Name = dx7.NewName("COPY")
	path := writeBank(t, b)

	h := &toolHandler{}
	res, _ := h.findDuplicates(context.Background(), callRequest(map[string]any{"path": path}))
	var lines []string
	if err := json.Unmarshal([]byte(resultText(t, res)), &lines); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "Found duplicate: 4 = 21" {
		t.Errorf("wrong duplicates: %v", lines)
	}
	b.Voices[20].Algorithm = 20
	path = writeBank(t, b)
	res, _ = h.findDuplicates(context.Background(), callRequest(map[string]any{"path": path}))
	if text := resultText(t, res); text != "[]" {
		t.Errorf("no duplicates: got %q, want []", text)
	}
}

func TestToolErrors(t *testing.T) {
	h := &toolHandler{}
	ctx := context.Background()

	res, err := h.describeFile(ctx, callRequest(map[string]any{}))
	if err != nil || !res.IsError {
		t.Errorf("missing path: res %+v, err %v", res, err)
	}
	missing := filepath.Join(t.TempDir(), "nope.syx")
	res, _ = h.describeFile(ctx, callRequest(map[string]any{"path": missing}))
	if !res.IsError || !strings.Contains(resultText(t, res), "can't open the file") {
		t.Errorf("missing file: %q", resultText(t, res))
	}

	single := filepath.Join(t.TempDir(), "voice.syx")
	v := dx7.InitVoice()
	os.WriteFile(single, v.Sysex(0), 0644)
	res, _ = h.findDuplicates(ctx, callRequest(map[string]any{"path": single}))
	if !res.IsError {
		t.Error("duplicates of a single voice did not fail")
	}
}

func TestNewServer(t *testing.T) {
	s := newServer(&toolHandler{})
	msg := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	out, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"dx7_describe-file", "dx7_get-voice", "dx7_list-names", "dx7_find-duplicates"} {
		if !strings.Contains(string(out), `"`+name+`"`) {
			t.Errorf("tool %s not listed: %s", name, out)
		}
	}
}
