/*
Package fsio defines the primitive file operations that transfers are built
from, plus the host-filesystem implementation of them.

	+-----------+         +-----------+
	|    FS     |--opens--|   File    |
	| (paths)   |         | (handles) |
	+-----+-----+         +-----+-----+
	      |                     |
	+-----+-----+         +-----+-----+
	|   OSFS    |         |  osFile   |
	| (os pkg)  |         | (os.File) |
	+-----------+         +-----------+

🎯 Purpose:
- Give the transfer engine a narrow, swappable view of the filesystem
- Carry per-handle metadata (size, mode, device) in one query
- Hide platform differences in device identification behind build tags

🤝 Interfaces:
- FS: path-level operations (open, remove, rename)
- File: handle-level operations (read, write, sync, stat)

📝 Notes:
OSFS returns os errors unwrapped: *os.PathError already names the operation
and the path, so another layer of context would only repeat it. Callers add
their own context when they wrap.

Device identifiers are volume serial numbers on Windows and st_dev values on
unix. Platforms with neither report HasDevice == false and are handled by
callers as if every pair of paths crossed devices.
*/
package fsio
