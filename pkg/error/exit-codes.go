/*
Copyright © 2022 - 2025 SUSE LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// provides a custom error interface and exit codes to use on the modelfetch cli
package error

//
// Provided exit codes for the modelfetch cli

// To make it easy to generate them you have to respect the structure:
//
// comment that explains the error
// const NamedConstant = ERRORCODE

// Error reading the runtime configuration
const ReadingRunConfig = 10

// A required repository property is missing or invalid
const RepoConfig = 11

// The configured repository protocol is not registered
const UnknownProtocol = 12

// The requested repository name is not present in configuration
const UnknownRepository = 13

// Checkout failed while materializing repository content
const CheckoutFailure = 14

// Error creating the checkout directory
const CreateDir = 15

// Error extracting a downloaded package archive
const ExtractArchive = 16

// Unknown error
const Unknown = 255
