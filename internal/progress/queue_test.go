package progress

import (
	"fmt"
	"testing"
	"time"
)

func TestQueue(t *testing.T) {
	// 测试1: 先进先出
	t.Run("fifo_order", func(t *testing.T) {
		q := NewQueue()
		q.Put("a")
		q.Put("b")
		q.Put("c")

		for _, want := range []string{"a", "b", "c"} {
			got, ok := q.Get()
			if !ok {
				t.Fatal("队列非空时Get不应返回false")
			}
			if got != want {
				t.Errorf("期望取出%s，实际取出%s", want, got)
			}
		}
	})

	// 测试2: 无消费者时生产者永不阻塞
	t.Run("producer_never_blocks", func(t *testing.T) {
		q := NewQueue()
		done := make(chan struct{})
		go func() {
			for i := 0; i < 10000; i++ {
				q.Put(fmt.Sprintf("msg-%d", i))
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Fatal("生产者在无消费者时被阻塞")
		}
		if q.Len() != 10000 {
			t.Errorf("期望排队10000条，实际%d条", q.Len())
		}
	})

	// 测试3: 空队列Get阻塞直到有消息
	t.Run("get_blocks_until_put", func(t *testing.T) {
		q := NewQueue()
		got := make(chan string, 1)
		go func() {
			msg, _ := q.Get()
			got <- msg
		}()

		time.Sleep(50 * time.Millisecond)
		q.Put("wake")

		select {
		case msg := <-got:
			if msg != "wake" {
				t.Errorf("期望取出wake，实际取出%s", msg)
			}
		case <-time.After(3 * time.Second):
			t.Fatal("Put后消费者未被唤醒")
		}
	})

	// 测试4: 关闭后先取空再返回false
	t.Run("close_drains_then_false", func(t *testing.T) {
		q := NewQueue()
		q.Put("last")
		q.Close()

		msg, ok := q.Get()
		if !ok || msg != "last" {
			t.Errorf("关闭后应先取出残留消息，实际 msg=%s ok=%v", msg, ok)
		}
		if _, ok := q.Get(); ok {
			t.Error("队列关闭且取空后Get应返回false")
		}
	})

	// 测试5: 关闭后的Put被忽略
	t.Run("put_after_close_ignored", func(t *testing.T) {
		q := NewQueue()
		q.Close()
		q.Put("ignored")
		if q.Len() != 0 {
			t.Errorf("关闭后Put应被忽略，实际排队%d条", q.Len())
		}
	})

	// 测试6: TryGet不阻塞
	t.Run("tryget_nonblocking", func(t *testing.T) {
		q := NewQueue()
		if _, ok := q.TryGet(); ok {
			t.Error("空队列TryGet应返回false")
		}
		q.Put("x")
		if msg, ok := q.TryGet(); !ok || msg != "x" {
			t.Errorf("期望取出x，实际 msg=%s ok=%v", msg, ok)
		}
	})
}
