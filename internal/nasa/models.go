package nasa

// Apod is the display-ready astronomy picture record.
type Apod struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	MediaType   string `json:"media_type"`
	Explanation string `json:"explanation"`
}

// Epic is the display-ready earth image record.
type Epic struct {
	Caption string `json:"caption"`
	URL     string `json:"url"`
	Date    string `json:"date"`
}

func fallbackApod() Apod {
	return Apod{
		Title:       "Hubble Ultra Deep Field",
		URL:         "https://cdn.esahubble.org/archives/images/screen/heic0611b.jpg",
		MediaType:   "image",
		Explanation: "Das Hubble Ultra Deep Field - ein Blick in die Tiefen des Universums.",
	}
}

func fallbackEpic() Epic {
	return Epic{
		Caption: "NASA Earth Observatory",
		URL:     "https://eoimages.gsfc.nasa.gov/images/imagerecords/73000/73909/world.topo.bathy.200412.3x5400x2700.jpg",
		Date:    "Archive Image",
	}
}
