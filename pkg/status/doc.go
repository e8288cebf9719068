/*
Package status reads route handler files and writes them back only when a
rewrite actually changed them.

	     +-------------+
	     |  operation  |
	     +------+------+
	            |  original, modified
	     +------+------+
	     |   Manager   |
	     +------+------+
	            |
	 +----------+----------+
	 |                     |
	+-----+-----+   +------+------+
	|   Files   |   |  FileInfo   |
	| (on disk) |   |  (tracked)  |
	+-----------+   +-------------+

🎯 Purpose:
- Reads target files
- Compares checksums of original and rewritten content
- Writes changed files atomically, preserving their mode
- Records a FileInfo per file for the summary

📊 File states:
- fixed:     content changed and was written back
- skipped:   content unchanged, file never opened for writing
- would-fix: content would change, but this is a dry run

⚠️ No backup is taken. A fixed file is overwritten in place.

🔍 Example:

	mgr := status.New(false)

	original, err := mgr.ReadFile(ctx, path)
	// ... rewrite ...
	info, err := mgr.WriteFileIfChanged(ctx, path, original, modified)
	mgr.Track(info)

	fmt.Println(status.NewDefaultFileFormatter().FormatFileOperation(info))
*/
package status
