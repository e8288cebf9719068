/*
Package operation runs the batch rewrite.

	+-------------+
	|    scan     |
	| (discover)  |
	+------+------+
	       |  paths, in order
	+------+------+
	|  Operation  |
	| (one file   |
	|  at a time) |
	+------+------+
	       |
	+------+------+      +-------------+
	|   rewrite   | ---> |   status    |
	|  (pipeline) |      | (write if   |
	+-------------+      |  changed)   |
	                     +------+------+
	                            |
	                     +------+------+
	                     |     log     |
	                     |  (report)   |
	                     +-------------+

🔄 Flow:
1. Scan the root for target files
2. For each file: read, run the rewrite pipeline, write back only if changed
3. Print Fixed/Skipped per file, then the count and the review checklist

⚠️ Files are processed strictly one at a time. The first error aborts the
run. There is no rollback: files fixed before the error stay fixed.

🔍 Example:

	op, err := operation.NewFixOperation(operation.Options{
		Config:   cfg,
		Files:    status.New(cfg.DryRun),
		Pipeline: rewrite.NewNextParamsPipeline(),
	})
	ctx = log.NewContext(ctx, log.New(os.Stdout, logger))
	err = operation.NewRunner(&logger).Run(ctx, op)
	fmt.Println(op.Summary().Fixed)
*/
package operation
