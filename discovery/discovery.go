package discovery

import (
	"encoding/json"
	"net"
	"strings"

	"github.com/ShashankBagda/AI-Restaurant/utils"
)

const ProbeMessage = "SMART_RESTRO_DISCOVER"

type announcement struct {
	ServerName string `json:"server_name"`
	IP         string `json:"ip"`
	HTTPPort   string `json:"http_port"`
}

// Start runs a best-effort UDP responder so table-side clients can locate
// the server on the local network. Any datagram other than the fixed probe
// is ignored. No authentication at this layer.
func Start(port int, serverName, httpPort string) error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: port})
	if err != nil {
		return err
	}

	go serve(conn, serverName, httpPort)
	utils.InfoLogger.Printf("Discovery responder listening on udp/%d", port)
	return nil
}

func serve(conn *net.UDPConn, serverName, httpPort string) {
	defer conn.Close()
	buf := make([]byte, 1024)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			utils.ErrorLogger.Errorf("Discovery responder stopped: %v", err)
			return
		}
		if strings.TrimSpace(string(buf[:n])) != ProbeMessage {
			continue
		}
		payload, err := json.Marshal(announcement{
			ServerName: serverName,
			IP:         localIP(),
			HTTPPort:   httpPort,
		})
		if err != nil {
			continue
		}
		conn.WriteToUDP(payload, addr)
	}
}

// localIP finds the outbound interface address without sending anything.
func localIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
