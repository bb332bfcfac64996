package layout

// CenterColumn centers the active column in the working area.
func (sp *ScrollingSpace) CenterColumn() {
	if len(sp.columns) == 0 {
		return
	}

	idx := sp.activeColumnIdx
	col := sp.columns[idx]
	sp.cancelResizeForColumn(col)

	newOffset := sp.computeNewViewOffsetCentered(sp.targetViewPos(), sp.columnX(idx), col.Width(), col.SizingMode())
	sp.animateViewOffsetWithConfig(idx, newOffset, sp.opts.Animations.HorizontalViewMovement)
}

// CenterVisibleColumns centers the group of fully visible columns as a
// whole. No-op when the active column isn't fully on screen or the space
// always centers anyway.
func (sp *ScrollingSpace) CenterVisibleColumns() {
	if len(sp.columns) == 0 || sp.isCenteringFocusedColumn() {
		return
	}

	// Work against the end of any ongoing animation, like the fit
	// computation does.
	viewX := sp.targetViewPos()
	workingX := sp.workingArea.Loc.X
	workingW := sp.workingArea.Size.W
	gap := sp.opts.Gaps

	widthTaken := 0.
	leftmostColX := 0.
	haveLeftmost := false
	activeColX := 0.
	haveActive := false

	for idx := range sp.columns {
		colX := sp.columnX(idx)
		if colX < viewX+workingX+gap {
			// Goes off-screen to the left.
			continue
		}
		if !haveLeftmost {
			leftmostColX = colX
			haveLeftmost = true
		}

		width := sp.columns[idx].Width()
		if viewX+workingX+workingW < colX+width+gap {
			// Goes off-screen to the right; nothing further fits.
			break
		}

		if idx == sp.activeColumnIdx {
			activeColX = colX
			haveActive = true
		}
		widthTaken += width + gap
	}

	if !haveActive {
		return
	}

	col := sp.columns[sp.activeColumnIdx]
	sp.cancelResizeForColumn(col)

	freeSpace := workingW - widthTaken + gap
	newViewX := leftmostColX - freeSpace/2 - workingX

	sp.animateViewOffset(sp.activeColumnIdx, newViewX-activeColX)
	// Just in case: make sure the active column stays in view.
	sp.animateViewOffsetToColumn(sp.targetViewPos(), sp.activeColumnIdx, -1)
}
