/*
Package config parses robowrap job files.

	            +-------------+
	            |     Job     |
	            | (job file)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Reads one job file per run, picking the parser from the file extension
- Keeps optional keys optional: every optional field is a pointer
- Reports missing required keys as *ValidationError

📄 Job file (YAML):

	name: photos
	source:
	  name: KINGSTON
	  path: \DCIM
	  flag: $drive$\ROBOWRAP.FLAG
	destination:
	  path: $USERPROFILE$\Pictures\camera
	settings:
	  time_format: "%Y%m%d"
	robocopy:
	  options: /MIR /R:1 /W:1
	  log: $dst_path$\robocopy-$timestamp$.log
	  files: "*.jpg"

Defaults are not applied here. The job builder merges them in one step.
*/
package config
