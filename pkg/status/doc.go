/*
Package status records the outcome of each job in a batch.

	+-----------+     +-----------+     +-----------+
	|  Result   | --> |  Report   | --> | Formatter |
	| (one job) |     | (a batch) |     | (console) |
	+-----------+     +-----------+     +-----------+

🎯 Purpose:
- Gives every job an explicit outcome value instead of an escaping error
- Keeps the failure reason, so a missing safety flag (likely the wrong device)
reads differently from a configuration bug
- Produces the final "N succeeded and M failed" tally

A failed job never stops a batch. Only a failure to read the host's volume
table does; the runner records the failed Result and also returns the error.
*/
package status
