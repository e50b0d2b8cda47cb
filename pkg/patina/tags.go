package patina

// FilesForTags selects the entries to process. Without tags every entry is
// selected; otherwise only entries sharing at least one tag, in declaration
// order.
func (p *Patina) FilesForTags(tags []string) []*FileEntry {
	if len(tags) == 0 {
		return p.Files
	}

	var selected []*FileEntry
	for _, f := range p.Files {
		for _, tag := range tags {
			if f.HasTag(tag) {
				selected = append(selected, f)
				break
			}
		}
	}
	return selected
}
