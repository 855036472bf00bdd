// Package tutorial registers the tutorial chapters and runs them.
//
// A chapter is looked up by id and run in one of three ways:
//
//	ch, _ := tutorial.Lookup("1_3")
//	cfg := tutorial.DefaultConfig().WithSize(640, 480)
//
//	tutorial.Run(ctx, ch, cfg)          // window, shares the window's GPU device
//	img, _ := tutorial.Capture(ctx, ch, cfg) // one headless GPU frame
//	img, _ = tutorial.Preview(ch, cfg)       // software rendering with gg
//
// Challenge chapters (ids ending in "_1") switch state on Space. Capture
// and Preview take the same keys as trailing arguments.
package tutorial
