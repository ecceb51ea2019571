/*
Package operation runs job files through the copy tool.

	+-----------+     +-----------+     +-----------+     +-----------+
	|   Load    | --> |   Build   | --> |   Gate    | --> |  Execute  |
	| (config)  |     |  (job)    |     |  (flags)  |     | (robocopy)|
	+-----------+     +-----------+     +-----------+     +-----------+

🎯 Purpose:
- Turns a job file into exactly one status.Result
- Builds the copy tool argument vector and launches it
- Reads the exit code the way robocopy means it: below 8 is success

🔄 Flow:
1. Check the job file exists and has a known extension
2. Parse and validate it
3. Resolve drives and paths (volume criteria win over literal drives)
4. Check the source and destination safety flags
5. Launch the copy tool, or just log the command on a dry run

⚡ Batches:
Jobs run one at a time in the order given. A failed job is recorded and the
next one starts. Only a failed volume query ends the batch, since every later
job would need the same table.

🔍 Example:

	runner, err := operation.NewRunner(operation.RunnerOptions{
		Builder:  job.NewBuilder(resolver),
		Gate:     job.NewGate(text.NewSubstituter()),
		Executor: operation.NewExecutor(operation.ExecutorOptions{}),
	})
	report, err := runner.RunBatch(ctx, files)
*/
package operation
