package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameScheduler(t *testing.T) {
	f := NewFrameScheduler(0)
	assert.Nil(t, f.Cmd(), "nothing queued")

	var ran []string
	f.RequestFrame(func() {
		ran = append(ran, "a")
		f.RequestFrame(func() { ran = append(ran, "c") })
	})
	f.RequestFrame(func() { ran = append(ran, "b") })

	assert.NotNil(t, f.Cmd())
	assert.Nil(t, f.Cmd(), "one tick in flight at a time")

	f.Run()
	assert.Equal(t, []string{"a", "b"}, ran)
	assert.Equal(t, 1, f.Pending())
	assert.NotNil(t, f.Cmd())

	f.Run()
	assert.Equal(t, []string{"a", "b", "c"}, ran)
	assert.Zero(t, f.Pending())
	assert.Nil(t, f.Cmd())
}
