// Package element describes the addressable parts of a web page (links,
// forms, cookies, headers) and turns them into outgoing requests.
//
// Every element resolves an absolute action, carries a canonical lowercase
// method token and a set of inputs. Two elements with the same kind, action,
// method and inputs are the same element no matter how many times a crawl
// discovers them, see [Base.IdentityKey].
//
// Elements are not safe for concurrent use, callers that share one element
// between goroutines must synchronize access themselves.
package element
