package gdalgo

// BandStructure implements Structure for a Band
type BandStructure struct {
	SizeX, SizeY           int
	BlockSizeX, BlockSizeY int
	Scale, Offset          float64
	DataType               DataType
}

// DatasetStructure implements Structure for a Dataset
type DatasetStructure struct {
	BandStructure
	NBands int
}

// FirstBlock returns the topleft block definition
func (is BandStructure) FirstBlock() Block {
	return is.Block(0, 0)
}

// Block returns the block at the given indices, with its width and height
// clamped to the raster edge.
func (is BandStructure) Block(col, line int) Block {
	bl := Block{
		X0:       col * is.BlockSizeX,
		Y0:       line * is.BlockSizeY,
		W:        is.BlockSizeX,
		H:        is.BlockSizeY,
		structure: is,
	}
	if bl.X0+bl.W > is.SizeX {
		bl.W = is.SizeX - bl.X0
	}
	if bl.Y0+bl.H > is.SizeY {
		bl.H = is.SizeY - bl.Y0
	}
	return bl
}

// BlockCount returns the number of blocks in the x and y dimensions
func (is BandStructure) BlockCount() (x, y int) {
	return (is.SizeX + is.BlockSizeX - 1) / is.BlockSizeX,
		(is.SizeY + is.BlockSizeY - 1) / is.BlockSizeY
}

// Block is a window into a Band aligned to the band's internal tiling. Most
// drivers use "strips" of full width and one or a few lines; a OGC/COG GeoTiff
// would be using 256x256 or 512x512 tiles.
//
// Iterate over a band's blocks with
//
//	for block, ok := band.Structure().FirstBlock(), true; ok; block, ok = block.Next() {
//		// use block.X0, block.Y0, block.W, block.H
//	}
type Block struct {
	X0, Y0    int
	W, H      int
	structure BandStructure
}

// Next returns the following block in scanline order, and false once all
// blocks have been visited.
func (blk Block) Next() (Block, bool) {
	nc, nl := blk.X0/blk.structure.BlockSizeX, blk.Y0/blk.structure.BlockSizeY
	nc++
	cx, cy := blk.structure.BlockCount()
	if nc >= cx {
		nc = 0
		nl++
	}
	if nl >= cy {
		return Block{}, false
	}
	return blk.structure.Block(nc, nl), true
}
