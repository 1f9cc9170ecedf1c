package external

import (
	"path/filepath"
	"testing"
)

func TestCommandQueueDrainIsFIFOAndClears(t *testing.T) {
	q := NewCommandQueue()
	q.Enqueue(UiCommand{Kind: CmdSetPaused, Paused: true})
	q.Enqueue(UiCommand{Kind: CmdSetTimeScale, TimeScale: 2})

	cmds := q.Drain()
	if len(cmds) != 2 || cmds[0].Kind != CmdSetPaused || cmds[1].Kind != CmdSetTimeScale {
		t.Fatalf("unexpected drain order: %+v", cmds)
	}
	if len(q.Drain()) != 0 {
		t.Fatal("a second drain before any new enqueue should be empty")
	}
}

func TestFileSaveStorePutGetListDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileSaveStore(dir)
	if err != nil {
		t.Fatalf("NewFileSaveStore: %v", err)
	}

	if err := store.Put("autosave", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, err := store.Get("autosave")
	if err != nil || string(data) != `{"a":1}` {
		t.Fatalf("Get = %q, %v", data, err)
	}

	if err := store.Put("slot1", []byte(`{}`)); err != nil {
		t.Fatalf("Put slot1: %v", err)
	}
	keys, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 2 || keys[0] != "autosave" || keys[1] != "slot1" {
		t.Fatalf("keys = %v, want sorted [autosave slot1]", keys)
	}

	if err := store.Delete("slot1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	keys, _ = store.List()
	if len(keys) != 1 {
		t.Fatalf("keys after delete = %v", keys)
	}
}

func TestFileSaveStoreGetMissingKey(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileSaveStore(dir)
	if _, err := store.Get("nope"); err == nil {
		t.Fatal("reading a missing key should error")
	}
}

func TestFileSaveStorePutLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileSaveStore(dir)
	store.Put("x", []byte("1"))
	if _, err := filepath.Glob(filepath.Join(dir, "*.tmp")); err != nil {
		t.Fatalf("glob: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Fatal("a successful Put should not leave a .tmp file behind")
	}
}
