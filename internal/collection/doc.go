// Package collection implements the authoritative stores for the console's
// content collections.
//
// A Store owns one persistence key and keeps a session cache of the list
// stored under it. Every mutation follows the same sequence:
//
//  1. validate the candidate (content.NewPicture / content.NewLeader)
//  2. build the next list from a copy of the cached one
//  3. persist the whole list under the store's key
//  4. swap the cache to the next list
//  5. append one record to the activity log
//
// If step 3 fails the cache is untouched, so memory never runs ahead of
// persistence. A failure in step 5 is logged and does not undo the mutation,
// which is already durable.
//
// Stores are not safe for concurrent use; the console runs one operation at
// a time.
package collection
