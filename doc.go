/*
 * Copyright 2023 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package webarc decodes records from ARC and WARC files and hands their payload to a content extractor.

# ARC and WARC

ARC and WARC are container formats for storing captured web resources. A container is a sequence of records, each
with its own header and content. Records might be gzip compressed one by one, or the whole file might be compressed.
For web captures the content of a record is usually an http response with status line, headers and payload.

To learn more about the WARC standard, read the specification at https://iipc.github.io/warc-specifications/specifications/warc-format/warc-1.1/

# Walk a container

The [Walker] is used to process a whole container. It is initialized with [NewWalker]. For every record it builds a
flat [Metadata] from the record header, decides with [Classify] whether the record carries a payload, strips the
embedded http header and calls a [ContentExtractor] with the payload. Metadata keys are the record's header field
names, the http header names and the synthetic keys HTTP-Status-Code, HTTP-Content-Type and WARC-Content-Type.

# Read records

[OpenContainer] gives access to the raw records of a container. ARC records have their http header stripped by the
container reader, which also reports the status code. WARC records are returned with the whole content and
[ParseHttpHeader] is used to parse the http header of response records.

# Error handling

Opening a container that is not of the declared format fails with a [ContainerOpenError]. Broken framing later in the
stream gives a [ContainerReadError]. Both stop the walk. A malformed http header only degrades the metadata of its own
record. How framing errors and errors from the [ContentExtractor] are handled can be controlled by setting the
appropriate options when creating the [Walker].
*/
package webarc
