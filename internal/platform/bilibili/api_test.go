package bilibili

import (
	"encoding/json"
	"testing"
)

func TestCookieHeader(t *testing.T) {
	cookies := []storageStateCookie{
		{Name: "SESSDATA", Value: "abc123", Domain: ".bilibili.com"},
		{Name: "bili_jct", Value: "def456", Domain: ".bilibili.com"},
	}
	got := cookieHeader(cookies)
	want := "SESSDATA=abc123; bili_jct=def456"
	if got != want {
		t.Errorf("期望%q，实际%q", want, got)
	}
}

func TestStorageStateParse(t *testing.T) {
	snapshot := []byte(`{"cookies":[{"name":"SESSDATA","value":"xyz","domain":".bilibili.com"}],"origins":[]}`)
	var state storageState
	if err := json.Unmarshal(snapshot, &state); err != nil {
		t.Fatalf("解析快照失败: %v", err)
	}
	if len(state.Cookies) != 1 {
		t.Fatalf("期望1个cookie，实际%d个", len(state.Cookies))
	}
	if state.Cookies[0].Name != "SESSDATA" || state.Cookies[0].Value != "xyz" {
		t.Errorf("cookie解析错误: %+v", state.Cookies[0])
	}
}

func TestValidateSnapshotAPI_BadInput(t *testing.T) {
	t.Run("empty_snapshot", func(t *testing.T) {
		if _, _, err := ValidateSnapshotAPI(nil); err == nil {
			t.Error("空快照应报错")
		}
	})

	t.Run("invalid_json", func(t *testing.T) {
		if _, _, err := ValidateSnapshotAPI([]byte("not json")); err == nil {
			t.Error("非法JSON应报错")
		}
	})

	t.Run("no_cookies", func(t *testing.T) {
		if _, _, err := ValidateSnapshotAPI([]byte(`{"cookies":[]}`)); err == nil {
			t.Error("无cookie的快照应报错")
		}
	})
}
