package editor

// Event carries the result of asynchronous work back to the goroutine that
// owns the Manager. Receive from Manager.Events and pass each value to
// Manager.Handle.
type Event interface {
	event()
}

// fetchResult reports a finished background fetch for the trigger tagged
// with epoch.
type fetchResult struct {
	epoch uint64
	url   string
	data  []byte
	err   error
}

// autosaveDue reports that the autosave timer armed as generation gen fired.
type autosaveDue struct {
	gen uint64
}

func (fetchResult) event() {}
func (autosaveDue) event() {}
