package preprocess

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	content := "Name: {{ .Service | upper }}\nStage: {{ .Stage | default \"dev\" }}\n"
	got, err := Render(content, map[string]any{"Service": "api"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Name: API\nStage: dev\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_IntrinsicSyntaxUntouched(t *testing.T) {
	content := "Arn: !Sub \"arn:${AWS::Partition}:s3:::${Bucket}\"\n"
	got, err := Render(content, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != content {
		t.Errorf("intrinsic syntax changed: %q", got)
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := Render("{{ .Broken", nil); err == nil || !strings.Contains(err.Error(), "parse template") {
		t.Errorf("parse error not surfaced: %v", err)
	}
	if _, err := Render("{{ fail \"boom\" }}", nil); err == nil || !strings.Contains(err.Error(), "execute template") {
		t.Errorf("execute error not surfaced: %v", err)
	}
}
