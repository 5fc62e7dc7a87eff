package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"signage_server/internal/models"
	"signage_server/internal/player"

	"github.com/gorilla/websocket"
)

// displayResponse is the envelope returned by /api/v1/display/:slug
type displayResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Location models.Location `json:"location"`
		Banners  []models.Banner `json:"banners"`
	} `json:"data"`
	Message string `json:"message"`
}

// syncMessage is a push event from the /ws channel
type syncMessage struct {
	Type string `json:"type"`
}

func main() {
	// Parse command line flags
	serverAddr := flag.String("server", "localhost:8080", "Server address")
	slug := flag.String("slug", "", "Location slug this display is mounted at")
	mediaTimeout := flag.Duration("media-timeout", 30*time.Second, "Simulated playback length for video/youtube items")
	flag.Parse()

	if *slug == "" {
		log.Fatal("Slug is required. Use -slug flag")
	}

	fetchURL := fmt.Sprintf("http://%s/api/v1/display/%s", *serverAddr, *slug)
	client := &http.Client{Timeout: 10 * time.Second}

	fetch := func() ([]models.Banner, error) {
		resp, err := client.Get(fetchURL)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("display endpoint returned status %d", resp.StatusCode)
		}

		var body displayResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, err
		}
		return body.Data.Banners, nil
	}

	// Videos and YouTube embeds advance on their own "media ended"
	// event in a real player; a headless run fakes it with a timeout
	// so the rotation still cycles.
	var engine *player.Engine
	engine = player.NewEngine(fetch, func(banner models.Banner, index int) {
		log.Printf("📺 Showing [%d] %s banner: %s", index, banner.Type, banner.URL)

		if banner.Type.SelfTerminating() {
			id := banner.ID
			time.AfterFunc(*mediaTimeout, func() {
				if current, ok := engine.Current(); ok && current.ID == id && engine.Index() == index {
					engine.Advance()
				}
			})
		}
	})
	defer engine.Close()

	log.Printf("Fetching rotation for '%s' from %s", *slug, fetchURL)
	if err := engine.Start(); err != nil {
		log.Printf("⚠️ Initial fetch failed, waiting for sync: %v", err)
	}
	if engine.State() == player.StateEmpty {
		log.Println("📭 No live banners for this location yet")
	}

	// Keep a subscription open for the process lifetime; redial on
	// transport drops. Reconnecting alone never refetches, only an
	// explicit sync event does.
	u := url.URL{Scheme: "ws", Host: *serverAddr, Path: "/ws"}
	for {
		if err := listen(u.String(), engine); err != nil {
			log.Printf("❌ WebSocket error: %v", err)
		}
		log.Println("🔌 Reconnecting in 5s...")
		time.Sleep(5 * time.Second)
	}
}

// listen holds one websocket session, feeding sync events to the engine
func listen(wsURL string, engine *player.Engine) error {
	log.Printf("Connecting to %s", wsURL)
	c, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	for {
		var msg syncMessage
		if err := c.ReadJSON(&msg); err != nil {
			return err
		}

		switch msg.Type {
		case "connected":
			log.Println("✅ Sync channel established")
		case "sync":
			log.Println("🔄 Sync received, refetching rotation")
			if !engine.HandleSync() {
				log.Println("⏭ Refetch already in flight, sync ignored")
			}
		}
	}
}
