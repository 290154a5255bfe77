/*
Package transfer implements asynchronous-friendly, progress-reporting copy
and move of single regular files.

	                 +----------+
	                 |  Engine  |
	                 +----+-----+
	                      |
	          +-----------+-----------+
	          |                       |
	    +-----+-----+          +------+-----+
	    |   Copy    |          |    Move    |
	    | (stream)  |          | (dispatch) |
	    +-----+-----+          +------+-----+
	          |                       |
	          |              same device? ----yes---> rename
	          |                       |
	          +-------- no -----------+
	          |
	    +-----+------+
	    |   stream   |
	    | 16K chunks |
	    +------------+

🎯 Purpose:
- Stream file bytes in fixed-size chunks with bounded progress reporting
- Satisfy moves with an atomic rename whenever both paths share a device
- Fall back to copy-then-delete for cross-device moves
- Guarantee cleanup: every handle closed exactly once, partial destinations
  removed, exactly one terminal outcome per invocation

🔄 Flow:
1. Open source read-only, cache its size/mode/device metadata
2. Create or truncate the destination with the source's mode bits
3. Copy: stream chunks, sampling progress about once per percent
4. Move: compare device ids first; rename beats streaming when possible
5. Success: final 100% sample, close source, sync destination, close it
6. Failure: close everything, delete the partial destination, report

⚡ Key Responsibilities:
- Short-write accumulation (a short write is a continuation, not an error)
- Progress sampling policy (threshold = total/100, final sample unconditional)
- Durability barrier before the destination is considered written
- Failure cleanup that never touches the source file

🤝 Collaborators:
- fsio.FS / fsio.File: the primitive I/O capability everything runs on
- Reporter: the caller-supplied progress and outcome sink
- Hooks: function-value adapter for callers who don't want an interface

📝 Contract notes:
There is no cancellation and no timeout: a started transfer runs to Success
or Failure. The context parameter scopes logging only.

Every invocation produces exactly one outcome, and only after all handles
opened by that invocation have been released and, on failure, the partial
destination has been removed. The source file is never deleted on failure,
moves included.

🔍 Example:

	eng, err := transfer.New(transfer.Options{})
	if err != nil { ... }

	req := transfer.Request{
		SourcePath:      "/data/in.bin",
		DestinationPath: "/backup/in.bin",
		ReportProgress:  true,
	}

	err = eng.Copy(ctx, req, transfer.Hooks{
		OnProgress: func(completed, total int64) {
			fmt.Printf("\r%d/%d", completed, total)
		},
		OnResult: func(err error) {
			if err != nil {
				fmt.Println("copy failed:", err)
			}
		},
	})
*/
package transfer
