package specfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "ASAP_SPEC", `
# comment
TOP_MODULE=TOP
FILELIST=files.lst
SMU_SEGMENT_SIZE=4
MAX_SEQ_DEPTH=4
MAX_TRIGGERS=1
SRU_SEGMENT_SIZE=4
SRU_NUM_PLA=2
`)
	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if spec.TopModule != "TOP" || spec.FileList != "files.lst" {
		t.Errorf("unexpected top/filelist: %+v", spec)
	}
	if spec.SMUSegmentSize != 4 || spec.MaxSeqDepth != 4 || spec.MaxTriggers != 1 {
		t.Errorf("unexpected smu params: %+v", spec)
	}
	if spec.SRUSegmentSize != 4 || spec.SRUNumPLA != 2 {
		t.Errorf("unexpected sru params: %+v", spec)
	}
}

func TestLoadOptionalProgramFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "ASAP_SPEC", `
TOP_MODULE=TOP
FILELIST=files.lst
SMU_SEGMENT_SIZE=4
MAX_SEQ_DEPTH=4
MAX_TRIGGERS=1
SRU_SEGMENT_SIZE=4
SRU_NUM_PLA=2
SEQUENCE_FILE=seq.txt
REWRITE_FILE=rewrite.txt
`)
	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if spec.SequenceFile != "seq.txt" || spec.RewriteFile != "rewrite.txt" {
		t.Errorf("unexpected program file keys: %+v", spec)
	}
}

func TestLoadWithoutOptionalProgramFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "ASAP_SPEC", `
TOP_MODULE=TOP
FILELIST=files.lst
SMU_SEGMENT_SIZE=4
MAX_SEQ_DEPTH=4
MAX_TRIGGERS=1
SRU_SEGMENT_SIZE=4
SRU_NUM_PLA=2
`)
	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if spec.SequenceFile != "" || spec.RewriteFile != "" {
		t.Errorf("expected empty program file keys, got %+v", spec)
	}
}

func TestLoadMissingKey(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "ASAP_SPEC", "TOP_MODULE=TOP\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for missing keys")
	}
}

func TestLoadBadLine(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "ASAP_SPEC", "TOP_MODULE\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for line without '='")
	}
}

func TestLoadFileList(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "files.lst", "a.v\n\nb.v\n# comment\nc.v\n")
	files, err := LoadFileList(path)
	if err != nil {
		t.Fatalf("LoadFileList: %v", err)
	}
	want := []string{"a.v", "b.v", "c.v"}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}
