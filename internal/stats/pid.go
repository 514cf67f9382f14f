package stats

import "os"

func processPID() int {
	return os.Getpid()
}
