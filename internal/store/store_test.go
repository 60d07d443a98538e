package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"Fpublisher/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	db, err := database.Init(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("初始化测试数据库失败: %v", err)
	}
	return New(db, filepath.Join(dir, "cookies"))
}

func countRows(t *testing.T, s *Store) int64 {
	t.Helper()
	var count int64
	if err := s.DB().Model(&database.Account{}).Count(&count).Error; err != nil {
		t.Fatalf("统计行数失败: %v", err)
	}
	return count
}

func TestNewSessionRef(t *testing.T) {
	ref1, err := NewSessionRef()
	if err != nil {
		t.Fatalf("生成快照标识失败: %v", err)
	}
	ref2, err := NewSessionRef()
	if err != nil {
		t.Fatalf("生成快照标识失败: %v", err)
	}

	if !strings.HasSuffix(ref1, ".json") {
		t.Errorf("快照标识应以.json结尾: %s", ref1)
	}
	if ref1 == ref2 {
		t.Error("连续生成的快照标识不应相同")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	snapshot := []byte(`{"cookies":[{"name":"sessionid","value":"abc123"}]}`)

	ref, err := s.Put("测试账号", 3, snapshot, false, 0)
	if err != nil {
		t.Fatalf("写入快照失败: %v", err)
	}

	got, err := s.Get(ref)
	if err != nil {
		t.Fatalf("读取快照失败: %v", err)
	}
	if !bytes.Equal(got, snapshot) {
		t.Error("读回的快照内容与写入不一致")
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("nonexistent.json")
	if err == nil {
		t.Fatal("不存在的快照应返回错误")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("期望ErrNotFound，实际%v", err)
	}
}

func TestStore_UpdateMode(t *testing.T) {
	s := newTestStore(t)

	// 先插入一条记录
	ref1, err := s.Put("账号A", 3, []byte(`{"v":1}`), false, 0)
	if err != nil {
		t.Fatalf("插入记录失败: %v", err)
	}
	if n := countRows(t, s); n != 1 {
		t.Fatalf("期望1行，实际%d行", n)
	}

	accounts, err := s.ListAccounts()
	if err != nil {
		t.Fatalf("查询账号失败: %v", err)
	}
	recordID := accounts[0].ID

	// 测试1: update_mode=true 修改已有行，行数不变
	t.Run("update_replaces_row", func(t *testing.T) {
		ref2, err := s.Put("账号A", 3, []byte(`{"v":2}`), true, recordID)
		if err != nil {
			t.Fatalf("更新记录失败: %v", err)
		}
		if ref2 == ref1 {
			t.Error("更新应生成新的快照标识")
		}
		if n := countRows(t, s); n != 1 {
			t.Errorf("更新后期望仍为1行，实际%d行", n)
		}

		account, err := s.GetAccount(recordID)
		if err != nil {
			t.Fatalf("查询记录失败: %v", err)
		}
		if account.FilePath != ref2 {
			t.Errorf("记录应指向新快照%s，实际%s", ref2, account.FilePath)
		}
	})

	// 测试2: update_mode=false 总是追加新行
	t.Run("append_adds_row", func(t *testing.T) {
		if _, err := s.Put("账号B", 4, []byte(`{"v":3}`), false, 0); err != nil {
			t.Fatalf("追加记录失败: %v", err)
		}
		if n := countRows(t, s); n != 2 {
			t.Errorf("追加后期望2行，实际%d行", n)
		}
	})
}

func TestStore_MarkStatus(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Put("账号C", 2, []byte(`{}`), false, 0); err != nil {
		t.Fatalf("插入记录失败: %v", err)
	}

	accounts, _ := s.ListAccounts()
	recordID := accounts[0].ID

	if err := s.MarkStatus(recordID, 0); err != nil {
		t.Fatalf("更新状态失败: %v", err)
	}
	account, err := s.GetAccount(recordID)
	if err != nil {
		t.Fatalf("查询记录失败: %v", err)
	}
	if account.Status != 0 {
		t.Errorf("期望状态为0，实际%d", account.Status)
	}
}

func TestStore_WriteSnapshotOverwrite(t *testing.T) {
	s := newTestStore(t)
	ref, err := NewSessionRef()
	if err != nil {
		t.Fatalf("生成快照标识失败: %v", err)
	}

	if err := s.WriteSnapshot(ref, []byte(`{"v":1}`)); err != nil {
		t.Fatalf("写入快照失败: %v", err)
	}
	// 发布成功后回写刷新走同一标识
	if err := s.WriteSnapshot(ref, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("覆盖快照失败: %v", err)
	}

	got, err := s.Get(ref)
	if err != nil {
		t.Fatalf("读取快照失败: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("期望读到覆盖后的内容，实际%s", got)
	}
}
