package vulkanengine

// teardown records destructors in creation order and runs them in reverse.
type teardown struct {
	fns []func()
}

func (t *teardown) push(fn func()) {
	t.fns = append(t.fns, fn)
}

// run calls every destructor once, newest first, and empties the stack.
func (t *teardown) run() {
	for i := len(t.fns) - 1; i >= 0; i-- {
		t.fns[i]()
	}
	t.fns = nil
}
