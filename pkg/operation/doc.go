/*
Package operation turns the blocking transfer engine into asynchronous
operations with trackable handles.

	+-----------+     start      +-------------+
	| Operator  |--------------->|  Operation  |
	| (entry)   |   goroutine    |  (handle)   |
	+-----+-----+                +------+------+
	      |                             |
	+-----+------+                +-----+-----+
	|  transfer  |                | Done/Wait |
	|  .Engine   |--- hooks ----->|   /Err    |
	+------------+                +-----------+

🎯 Purpose:
- Run each copy/move off the caller's goroutine, the way hosts expect
- Hand back a handle carrying identity, kind and completion signal
- Route progress and outcome callbacks unchanged from the engine

🔄 Flow:
1. Operator.Copy or Operator.Move builds the transfer request
2. The blocking engine call runs on a fresh goroutine
3. Hooks receive progress samples and exactly one outcome
4. The handle's Done channel closes; Wait and Err observe the result

📝 Contract notes:
Handles expose no cancellation: once started, an operation runs to Success
or Failure. Wait returning early on an expired context only abandons the
waiting, never the work.

Operations against disjoint file pairs are independent; nothing here
serializes them. An operation owns its two file handles exclusively for its
whole lifetime.

🔍 Example:

	op, err := operation.New(operation.Options{})
	if err != nil { ... }

	handle := op.Copy(ctx, "/data/in.bin", "/backup/in.bin", transfer.Hooks{
		OnProgress: func(completed, total int64) { ... },
		OnResult:   func(err error) { ... },
	})

	if err := handle.Wait(ctx); err != nil {
		log.Error().Err(err).Msg("copy failed")
	}
*/
package operation
