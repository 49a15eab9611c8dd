package printer

// ThermalRenderer renders sheets as ESC/POS for roll paper of Width characters.
type ThermalRenderer struct {
	Width int
}

func (ThermalRenderer) ContentType() string { return ContentTypeESCPOS }

func (r ThermalRenderer) Render(s *Sheet) ([]byte, error) {
	doc := NewDocument(r.Width)

	doc.SetAlign(AlignCenter)
	for i, line := range s.Header {
		if i == 0 {
			doc.SetBold(true).SetFontSize(FontDouble).Text(line).SetFontSize(FontNormal).SetBold(false)
			continue
		}
		doc.Text(line)
	}
	if s.Title != "" {
		doc.SetBold(true).Text(s.Title).SetBold(false)
	}
	doc.SetAlign(AlignLeft).Separator('-')

	for _, m := range s.Meta {
		doc.KeyValue(m.Label, m.Value)
	}

	if len(s.Columns) > 0 {
		doc.Separator('-')
		w := widths(s.Columns, doc.Width())
		aligns := make([]int, len(s.Columns))
		titles := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			aligns[i] = c.Align
			titles[i] = c.Title
		}
		doc.SetBold(true).Columns(w, aligns, titles).SetBold(false)
		for _, row := range s.Rows {
			// the first cell is usually a product name; give it a full line when it
			// would be cut
			if len(row) > 0 && len([]rune(row[0])) > w[0] {
				doc.Text(row[0])
				row = append([]string{""}, row[1:]...)
			}
			doc.Columns(w, aligns, row)
		}
	}

	doc.Separator('-')
	for _, t := range s.Totals {
		doc.SetBold(t.Bold).KeyValue(t.Label, t.Value).SetBold(false)
	}
	for _, n := range s.Notes {
		doc.Text(n)
	}

	if len(s.Footer) > 0 {
		doc.Separator('-').SetAlign(AlignCenter).LineFeed()
		for _, f := range s.Footer {
			doc.Text(f)
		}
		doc.SetAlign(AlignLeft)
	}

	doc.FeedLines(3).PartialCut()
	return doc.Bytes(), nil
}
