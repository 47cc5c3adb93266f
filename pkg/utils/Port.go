package utils

import "strconv"


/*
	normalize a port to the format expected by net.Listen --> ":<port>"

	peers are addressed by host only, with each module listening on its own
	well known port, so dial targets are always host + normalized port
*/

func NormalizePort(port int) string {
	return ":" + strconv.Itoa(port)
}
