// Package document defines the sticker board's persisted entity.
//
// A Document is a Background (blank, embedded image bytes, or a URL to fetch)
// plus an ordered list of Stickers. The package has no behavior beyond value
// equality, ID allocation and a lossless JSON codec:
//
//	{"background":{"kind":"url","url":"http://x/img.png"},
//	 "stickers":[{"id":1,"text":"😀","x":200,"y":100,"size":100}],
//	 "lastStickerId":1}
//
// Sticker IDs come from a high-water mark stored with the document, so an ID
// is never reissued even after the sticker holding it has been removed.
package document
